package models

type Employee struct {
	EmployeeID    int64  `json:"Employee_ID"`
	Name          string `json:"Name"`
	ContactNumber string `json:"Contact_Number"`
	StartDate     string `json:"Start_Date"`
	ManagerID     *int64 `json:"Manager_ID,omitempty"`
}
