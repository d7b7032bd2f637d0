package transport

type DayCount struct {
	Day   string `json:"day"`
	Count int    `json:"count"`
}

type IndustryShare struct {
	Name       string `json:"name"`
	Count      int    `json:"count"`
	Percentage int    `json:"percentage"`
}

type StatusShare struct {
	Status     string `json:"status"`
	Count      int    `json:"count"`
	Percentage int    `json:"percentage"`
}

type Priorities struct {
	OverdueCount  int `json:"overdueCount"`
	NewLeadsToday int `json:"newLeadsToday"`
}

type DashboardStats struct {
	TotalLeads           int             `json:"totalLeads"`
	ActiveLeads          int             `json:"activeLeads"`
	ConvertedLeads       int             `json:"convertedLeads"`
	AvgScore             float64         `json:"avgScore"`
	ConversionRate       float64         `json:"conversionRate"`
	LeadTrends           []DayCount      `json:"leadTrends"`
	IndustryDistribution []IndustryShare `json:"industryDistribution"`
	StatusDistribution   []StatusShare   `json:"statusDistribution"`
	Priorities           Priorities      `json:"priorities"`
}

// IndustryPerformance carries a simulated growth figure; it is not measured.
type IndustryPerformance struct {
	Name   string `json:"name"`
	Value  string `json:"value"`
	Growth string `json:"growth"`
	Icon   string `json:"icon"`
}

type StatusSlice struct {
	Label   string `json:"label"`
	Percent int    `json:"percent"`
	Count   string `json:"count"`
	Color   string `json:"color"`
}

type FunnelStage struct {
	Label   string `json:"label"`
	Value   string `json:"value"`
	Percent string `json:"percent"`
	X       string `json:"x"`
}

type AnalyticsStats struct {
	LeadsIncrease       string                `json:"leadsIncrease"`
	TotalLeads          string                `json:"totalLeads"`
	AvgPerMonth         string                `json:"avgPerMonth"`
	BestMonth           string                `json:"bestMonth"`
	IndustryPerformance []IndustryPerformance `json:"industryPerformance"`
	StatusDistribution  []StatusSlice         `json:"statusDistribution"`
	FunnelData          []FunnelStage         `json:"funnelData"`
}
