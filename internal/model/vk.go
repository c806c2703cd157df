package model

import "fmt"

type VKRequestParam struct {
	Key   string `json:"key"`
	Value string `json:"value"`
}

type VKError struct {
	ErrorCode     int              `json:"error_code"`
	ErrorMsg      string           `json:"error_msg"`
	RequestParams []VKRequestParam `json:"request_params"`
}

type VKProfile struct {
	Id        int64  `json:"id"`
	FirstName string `json:"first_name"`
	LastName  string `json:"last_name"`
	Photo50   string `json:"photo_50"`
}

type VKGroup struct {
	Id      int64  `json:"id"`
	Name    string `json:"name"`
	Photo50 string `json:"photo_50"`
}

type VKConversationMembers struct {
	Count    int         `json:"count"`
	Profiles []VKProfile `json:"profiles"`
	Groups   []VKGroup   `json:"groups"`
}

func (e *VKError) Error() string {
	return fmt.Sprintf("vk error %d: %s", e.ErrorCode, e.ErrorMsg)
}
