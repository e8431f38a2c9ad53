package dto

// AddCustomerRequest is posted to /addcustomer. The API takes every field
// as the raw form string.
type AddCustomerRequest struct {
	Name        string `json:"Name"`
	DOB         string `json:"DOB"`
	PhoneNumber string `json:"Phone_Number"`
	Street      string `json:"Street"`
	City        string `json:"City"`
	State       string `json:"State"`
	Pincode     string `json:"Pincode"`
}

type AddCustomerResponse struct {
	CustomerID FlexibleID `json:"Customer_ID"`
}
