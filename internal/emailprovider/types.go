package emailprovider

// sendRequest — тело запроса на отправку письма.
type sendRequest struct {
	From    string   `json:"from"`
	To      []string `json:"to"`
	Subject string   `json:"subject"`
	HTML    string   `json:"html"`
}

// sendResponse — ответ провайдера с идентификатором принятого письма.
type sendResponse struct {
	ID string `json:"id"`
}
