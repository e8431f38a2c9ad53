package models

type Branch struct {
	BranchName  string `json:"Branch_Name"`
	BranchCity  string `json:"Branch_City"`
	Assets      Number `json:"Assets"`
	Liabilities Number `json:"Liabilities"`
}

func (b Branch) NetWorth() float64 {
	return b.Assets.Float64() - b.Liabilities.Float64()
}
