package dto

// AnalyticsQuery is one entry of the staff analytics catalog. The SQL is
// informational; the API executes it server side.
type AnalyticsQuery struct {
	ID          int
	Slug        string
	Title       string
	Description string
	SQL         string
}

func (q AnalyticsQuery) Endpoint() string {
	return "/api/analytics/" + q.Slug
}

var AnalyticsCatalog = []AnalyticsQuery{
	{
		ID:          1,
		Slug:        "customers-by-branch-city",
		Title:       "Customers with Loans from a Specific Branch City",
		Description: "Retrieves all customers who have taken loans from branches in New York.",
		SQL: `SELECT c.Customer_ID, c.Name, l.Loan_Number, l.Amount, br.Branch_City
FROM Customer c
JOIN Borrow b ON c.Customer_ID = b.Customer_ID
JOIN Loan l ON b.Loan_Number = l.Loan_Number
JOIN Branch br ON l.Branch_Name = br.Branch_Name
WHERE br.Branch_City = 'New York';`,
	},
	{
		ID:          2,
		Slug:        "average-transaction-amount",
		Title:       "Average Transaction Amount on Active Accounts",
		Description: "Finds accounts where the average transaction amount is greater than $100.",
		SQL: `SELECT t.Account_ID, AVG(t.Transaction_Amount) AS avg_transaction, COUNT(*) AS transaction_count
FROM Transaction t
GROUP BY t.Account_ID
HAVING AVG(t.Transaction_Amount) > 100;`,
	},
	{
		ID:          3,
		Slug:        "employee-service-load",
		Title:       "Employee Service Load (Number of Customers Served)",
		Description: "Identifies employees who serve as bankers and counts the number of customers they manage.",
		SQL: `SELECT e.Employee_ID, e.Name, COUNT(b.Customer_ID) AS num_customers
FROM Employee e
JOIN Banker b ON e.Employee_ID = b.Employee_ID
GROUP BY e.Employee_ID, e.Name
ORDER BY num_customers DESC;`,
	},
	{
		ID:          4,
		Slug:        "savings-above-average-interest",
		Title:       "Savings Accounts with Above-Average Interest Rates",
		Description: "Finds savings accounts offering an interest rate higher than the average interest rate.",
		SQL: `SELECT sa.Account_ID, sa.Rate_of_Interest
FROM Savings_Acc sa
WHERE sa.Rate_of_Interest > (SELECT AVG(Rate_of_Interest) FROM Savings_Acc);`,
	},
	{
		ID:          5,
		Slug:        "branch-loan-summary",
		Title:       "Branch Loan and Payment Summary",
		Description: "Provides a financial summary for each bank branch showing total loans, payments, and outstanding amounts.",
		SQL: `SELECT o.Branch_Name, SUM(l.Amount) AS total_loan, SUM(DISTINCT p.Payment_Amount) AS total_payment,
(SUM(l.Amount) - SUM(p.Payment_Amount)) AS outstanding_amount
FROM Originated_By o
JOIN Loan l ON o.Loan_Number = l.Loan_Number
JOIN Payment p ON l.Loan_Number = p.Loan_Number
GROUP BY o.Branch_Name;`,
	},
}

// FindAnalyticsQuery looks a catalog entry up by slug.
func FindAnalyticsQuery(slug string) (AnalyticsQuery, bool) {
	for _, q := range AnalyticsCatalog {
		if q.Slug == slug {
			return q, true
		}
	}
	return AnalyticsQuery{}, false
}
