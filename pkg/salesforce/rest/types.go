package sfrest

// AuthResponse represents the OAuth token response
type AuthResponse struct {
	AccessToken string `json:"access_token"`
	InstanceURL string `json:"instance_url"`
	TokenType   string `json:"token_type"`
	IssuedAt    string `json:"issued_at"`
	Signature   string `json:"signature"`
}

// RecordType carries the record type name when the SOQL query selects it
type RecordType struct {
	Name string `json:"Name"`
}

// Account is the subset of Salesforce Account fields the enrichment flow reads
type Account struct {
	ID             string      `json:"Id"`
	Name           string      `json:"Name"`
	RestaurantName string      `json:"Nom_du_restaurant__c"`
	BillingStreet  string      `json:"BillingStreet"`
	BillingCity    string      `json:"BillingCity"`
	BillingCountry string      `json:"BillingCountry"`
	Website        string      `json:"Website"`
	Phone          string      `json:"Phone"`
	Type           string      `json:"Type"`
	RecordType     *RecordType `json:"RecordType"`
}

// QueryResponse represents a SOQL query result page
type QueryResponse struct {
	TotalSize      int       `json:"totalSize"`
	Done           bool      `json:"done"`
	NextRecordsURL string    `json:"nextRecordsUrl"`
	Records        []Account `json:"records"`
}
