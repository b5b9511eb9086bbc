package service

import "github.com/chorddesign/fundmatrix/internal/model"

// HotFundCodes lists the funds shown on the discovery board before the user
// holds anything.
var HotFundCodes = []string{
	"110011", // 易方达中小盘混合
	"161725", // 招商中证白酒指数
	"003834", // 华夏能源革新股票
	"005827", // 易方达蓝筹精选混合
	"001938", // 中欧时代先锋股票
	"320007", // 诺安成长混合
	"000961", // 天弘沪深300ETF联接A
	"001156", // 申万菱信新能源汽车
	"012414", // 中欧医疗创新股票
	"007119", // 华夏创业板动量成长ETF联接A
}

// presetPositions holds disclosed top-ten position tables for the hot funds,
// taken from published quarterly reports. Used as the last fallback when no
// position source answers, so look-through still works offline for these.
var presetPositions = map[string][]model.StockPosition{
	"110011": {
		{StockCode: "600519", StockName: "贵州茅台", WeightPercent: 9.12},
		{StockCode: "000858", StockName: "五粮液", WeightPercent: 6.45},
		{StockCode: "000568", StockName: "泸州老窖", WeightPercent: 5.23},
		{StockCode: "002304", StockName: "洋河股份", WeightPercent: 4.87},
		{StockCode: "600809", StockName: "山西汾酒", WeightPercent: 4.56},
		{StockCode: "000596", StockName: "古井贡酒", WeightPercent: 3.89},
		{StockCode: "603369", StockName: "今世缘", WeightPercent: 3.45},
		{StockCode: "600779", StockName: "水井坊", WeightPercent: 2.98},
		{StockCode: "000799", StockName: "酒鬼酒", WeightPercent: 2.67},
		{StockCode: "603589", StockName: "口子窖", WeightPercent: 2.34},
	},
	"161725": {
		{StockCode: "600519", StockName: "贵州茅台", WeightPercent: 19.85},
		{StockCode: "000858", StockName: "五粮液", WeightPercent: 15.23},
		{StockCode: "000568", StockName: "泸州老窖", WeightPercent: 10.12},
		{StockCode: "002304", StockName: "洋河股份", WeightPercent: 8.56},
		{StockCode: "600809", StockName: "山西汾酒", WeightPercent: 7.89},
		{StockCode: "000596", StockName: "古井贡酒", WeightPercent: 6.45},
		{StockCode: "603369", StockName: "今世缘", WeightPercent: 5.12},
		{StockCode: "600779", StockName: "水井坊", WeightPercent: 4.23},
		{StockCode: "000799", StockName: "酒鬼酒", WeightPercent: 3.67},
		{StockCode: "603589", StockName: "口子窖", WeightPercent: 3.12},
	},
	"003834": {
		{StockCode: "300750", StockName: "宁德时代", WeightPercent: 9.87},
		{StockCode: "002594", StockName: "比亚迪", WeightPercent: 7.65},
		{StockCode: "601012", StockName: "隆基绿能", WeightPercent: 6.54},
		{StockCode: "300014", StockName: "亿纬锂能", WeightPercent: 5.43},
		{StockCode: "002460", StockName: "赣锋锂业", WeightPercent: 4.32},
		{StockCode: "300274", StockName: "阳光电源", WeightPercent: 4.12},
		{StockCode: "002129", StockName: "TCL中环", WeightPercent: 3.87},
		{StockCode: "600438", StockName: "通威股份", WeightPercent: 3.56},
		{StockCode: "688005", StockName: "容百科技", WeightPercent: 3.23},
		{StockCode: "002812", StockName: "恩捷股份", WeightPercent: 2.98},
	},
	"005827": {
		{StockCode: "600519", StockName: "贵州茅台", WeightPercent: 8.56},
		{StockCode: "600036", StockName: "招商银行", WeightPercent: 6.78},
		{StockCode: "601318", StockName: "中国平安", WeightPercent: 5.67},
		{StockCode: "000333", StockName: "美的集团", WeightPercent: 4.89},
		{StockCode: "000651", StockName: "格力电器", WeightPercent: 4.12},
		{StockCode: "600900", StockName: "长江电力", WeightPercent: 3.89},
		{StockCode: "000858", StockName: "五粮液", WeightPercent: 3.67},
		{StockCode: "601888", StockName: "中国中免", WeightPercent: 3.45},
		{StockCode: "600276", StockName: "恒瑞医药", WeightPercent: 3.12},
		{StockCode: "000568", StockName: "泸州老窖", WeightPercent: 2.98},
	},
	"001938": {
		{StockCode: "300750", StockName: "宁德时代", WeightPercent: 7.89},
		{StockCode: "002594", StockName: "比亚迪", WeightPercent: 6.54},
		{StockCode: "600519", StockName: "贵州茅台", WeightPercent: 5.67},
		{StockCode: "000858", StockName: "五粮液", WeightPercent: 4.89},
		{StockCode: "601012", StockName: "隆基绿能", WeightPercent: 4.23},
		{StockCode: "002415", StockName: "海康威视", WeightPercent: 3.98},
		{StockCode: "300014", StockName: "亿纬锂能", WeightPercent: 3.67},
		{StockCode: "000333", StockName: "美的集团", WeightPercent: 3.45},
		{StockCode: "600036", StockName: "招商银行", WeightPercent: 3.12},
		{StockCode: "601318", StockName: "中国平安", WeightPercent: 2.89},
	},
	"320007": {
		{StockCode: "002371", StockName: "北方华创", WeightPercent: 9.87},
		{StockCode: "688041", StockName: "海光信息", WeightPercent: 8.56},
		{StockCode: "688256", StockName: "寒武纪", WeightPercent: 7.45},
		{StockCode: "002049", StockName: "紫光国微", WeightPercent: 6.34},
		{StockCode: "688008", StockName: "澜起科技", WeightPercent: 5.67},
		{StockCode: "603501", StockName: "韦尔股份", WeightPercent: 4.89},
		{StockCode: "688012", StockName: "中微公司", WeightPercent: 4.23},
		{StockCode: "002185", StockName: "华天科技", WeightPercent: 3.78},
		{StockCode: "688981", StockName: "中芯国际", WeightPercent: 3.45},
		{StockCode: "600584", StockName: "长电科技", WeightPercent: 3.12},
	},
	"000961": {
		{StockCode: "600519", StockName: "贵州茅台", WeightPercent: 4.89},
		{StockCode: "601318", StockName: "中国平安", WeightPercent: 2.78},
		{StockCode: "600036", StockName: "招商银行", WeightPercent: 2.45},
		{StockCode: "000858", StockName: "五粮液", WeightPercent: 1.98},
		{StockCode: "601166", StockName: "兴业银行", WeightPercent: 1.67},
		{StockCode: "600900", StockName: "长江电力", WeightPercent: 1.56},
		{StockCode: "000333", StockName: "美的集团", WeightPercent: 1.45},
		{StockCode: "600276", StockName: "恒瑞医药", WeightPercent: 1.34},
		{StockCode: "601888", StockName: "中国中免", WeightPercent: 1.23},
		{StockCode: "000568", StockName: "泸州老窖", WeightPercent: 1.12},
	},
	"001156": {
		{StockCode: "300750", StockName: "宁德时代", WeightPercent: 10.12},
		{StockCode: "002594", StockName: "比亚迪", WeightPercent: 8.67},
		{StockCode: "002460", StockName: "赣锋锂业", WeightPercent: 6.45},
		{StockCode: "300014", StockName: "亿纬锂能", WeightPercent: 5.89},
		{StockCode: "002812", StockName: "恩捷股份", WeightPercent: 4.78},
		{StockCode: "300124", StockName: "汇川技术", WeightPercent: 4.23},
		{StockCode: "601127", StockName: "赛力斯", WeightPercent: 3.89},
		{StockCode: "002074", StockName: "国轩高科", WeightPercent: 3.45},
		{StockCode: "688005", StockName: "容百科技", WeightPercent: 3.12},
		{StockCode: "300919", StockName: "中伟股份", WeightPercent: 2.89},
	},
	"012414": {
		{StockCode: "300760", StockName: "迈瑞医疗", WeightPercent: 9.45},
		{StockCode: "600276", StockName: "恒瑞医药", WeightPercent: 7.89},
		{StockCode: "300122", StockName: "智飞生物", WeightPercent: 6.34},
		{StockCode: "000661", StockName: "长春高新", WeightPercent: 5.67},
		{StockCode: "603259", StockName: "药明康德", WeightPercent: 4.89},
		{StockCode: "688180", StockName: "君实生物", WeightPercent: 4.23},
		{StockCode: "300347", StockName: "泰格医药", WeightPercent: 3.78},
		{StockCode: "002821", StockName: "凯莱英", WeightPercent: 3.45},
		{StockCode: "688276", StockName: "百克生物", WeightPercent: 3.12},
		{StockCode: "300759", StockName: "康龙化成", WeightPercent: 2.89},
	},
	"007119": {
		{StockCode: "300750", StockName: "宁德时代", WeightPercent: 15.23},
		{StockCode: "300760", StockName: "迈瑞医疗", WeightPercent: 5.67},
		{StockCode: "300014", StockName: "亿纬锂能", WeightPercent: 4.89},
		{StockCode: "300274", StockName: "阳光电源", WeightPercent: 4.12},
		{StockCode: "300124", StockName: "汇川技术", WeightPercent: 3.78},
		{StockCode: "300122", StockName: "智飞生物", WeightPercent: 3.45},
		{StockCode: "300059", StockName: "东方财富", WeightPercent: 3.12},
		{StockCode: "002475", StockName: "立讯精密", WeightPercent: 2.89},
		{StockCode: "300498", StockName: "温氏股份", WeightPercent: 2.67},
		{StockCode: "300413", StockName: "芒果超媒", WeightPercent: 2.34},
	},
}
