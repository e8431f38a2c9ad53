package models

type Customer struct {
	CustomerID  int64  `json:"Customer_ID"`
	Name        string `json:"Name"`
	DOB         string `json:"DOB"`
	PhoneNumber string `json:"Phone_Number"`
	Street      string `json:"Street"`
	City        string `json:"City"`
	State       string `json:"State"`
	Pincode     string `json:"Pincode"`
}
