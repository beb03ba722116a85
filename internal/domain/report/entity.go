// internal/domain/report/entity.go
package report

// Transaction is one row of the transaction report. The portal treats it
// as an opaque payload; only the gateway inspects individual fields.
type Transaction struct {
	ID                 string  `json:"id" db:"id"`
	Status             string  `json:"status" db:"status"`
	CreatedOn          string  `json:"createdOn" db:"created_on"`
	CreatedBy          string  `json:"createdBy" db:"created_by"`
	Principle          string  `json:"principle" db:"principle"`
	PrincipleID        string  `json:"principleId" db:"principle_id"`
	Service            string  `json:"service" db:"service"`
	RefNum             string  `json:"refNum" db:"ref_num"`
	Amount             string  `json:"amount" db:"amount"`
	SenderName         string  `json:"senderName" db:"sender_name"`
	ReceiverName       string  `json:"receiverName" db:"receiver_name"`
	AgentName          string  `json:"agentName" db:"agent_name"`
	AgentID            string  `json:"agentId" db:"agent_id"`
	Location           string  `json:"location" db:"location"`
	LocationID         string  `json:"locationId" db:"location_id"`
	CustomerNumber     string  `json:"customerNumber" db:"customer_number"`
	IDType             string  `json:"idType" db:"id_type"`
	IDNumber           string  `json:"idNumber" db:"id_number"`
	DOB                string  `json:"dob" db:"dob"`
	FirstName          string  `json:"firstName" db:"first_name"`
	LastName           string  `json:"lastName" db:"last_name"`
	Fee                float64 `json:"fee" db:"fee"`
	TotalPayableAmount float64 `json:"totalPayableAmount" db:"total_payable_amount"`
	Country            string  `json:"country" db:"country"`
	IsAlert            int     `json:"isAlert" db:"is_alert"`
	MGRefNum           *string `json:"mgRefNum" db:"mg_ref_num"`
	CountryRisk        string  `json:"countryRisk" db:"country_risk"`
	ProfRisk           string  `json:"profRisk" db:"prof_risk"`
	CountryID          string  `json:"countryId" db:"country_id"`
	SuspiciousNote     *string `json:"suspiciousNote" db:"suspicious_note"`
	ServiceName        *string `json:"serviceName" db:"service_name"`
}
