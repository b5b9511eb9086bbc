package model

// DataSource identifies which provider chain backs the fund estimate
// abstraction.
type DataSource string

// Available data sources. SourceEastmoney is presented to users as a
// distinct provider but currently resolves to the same adapter as
// SourceTiantian; the mapping is an explicit placeholder for a provider that
// is not yet independently implemented and must not be collapsed.
const (
	DataSourceTiantian   DataSource = "tiantian"
	DataSourceEastmoney  DataSource = "eastmoney"
	DataSourceCalculated DataSource = "calculated"
)

// DefaultDataSource is used when no valid selection has been persisted.
const DefaultDataSource = DataSourceEastmoney

// Valid reports whether ds is a recognized selection.
func (ds DataSource) Valid() bool {
	switch ds {
	case DataSourceTiantian, DataSourceEastmoney, DataSourceCalculated:
		return true
	}
	return false
}

// DataSourceInfo describes one selectable data source for the UI.
type DataSourceInfo struct {
	ID          DataSource `json:"id"`
	Name        string     `json:"name"`
	Description string     `json:"description"`
}

// DataSources lists the user-selectable estimate sources.
var DataSources = []DataSourceInfo{
	{ID: DataSourceEastmoney, Name: "东方财富", Description: "东方财富网估值数据"},
	{ID: DataSourceTiantian, Name: "天天基金", Description: "天天基金网实时估值"},
	{ID: DataSourceCalculated, Name: "持仓穿透", Description: "基于持仓股票计算估值"},
}
