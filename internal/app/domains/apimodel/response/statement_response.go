package response

// StatementResponse 对账单响应
type StatementResponse struct {
	Lines       []*StatementLineResponse `json:"lines"`
	Outstanding string                   `json:"outstanding"`
}

// StatementLineResponse 客户对账行
type StatementLineResponse struct {
	CustomerEmail string `json:"customer_email"`
	CustomerName  string `json:"customer_name"`
	Orders        int    `json:"orders"`
	Pending       string `json:"pending"`
	Verified      string `json:"verified"`
	Outstanding   string `json:"outstanding"`
}
