package smsprovider

// messageResponse — ответ провайдера на создание сообщения.
// При ошибке в теле приходит message с текстом причины.
type messageResponse struct {
	SID          string `json:"sid"`
	Status       string `json:"status"`
	ErrorMessage string `json:"message"`
}
