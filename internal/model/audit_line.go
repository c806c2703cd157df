package model

type AuditLine struct {
	Id       int64  `json:"id"`
	ChatId   int64  `json:"chat_id"`
	Text     string `json:"text"`
	DateUnix int64  `json:"dateunix"`
}
