package phrase

import (
	"strings"

	"github.com/ferdian3456/chatmoderation/internal/model"
)

type TemplateId int

const (
	UserLeave TemplateId = iota
	KickUser
	MuteUser
	ChangeSetting
)

var templates = map[TemplateId]string{
	UserLeave:     "{user} покинул{gender} чат",
	KickUser:      "{punisher} исключил{gender} {user} из чата",
	MuteUser:      "{punisher} заблокировал{gender} чат {time} {user}",
	ChangeSetting: "{user} {state}ключил{gender} {setting}",
}

const reasonClause = ". Причина: "

// Params is implemented by one record type per template.
type Params interface {
	Template() TemplateId
	values() map[string]string
	reason() string
}

// Gender is the verb ending for the actor of a phrase.
type Gender string

const (
	GenderNeuter    Gender = "о"
	GenderMasculine Gender = ""
	GenderFeminine  Gender = "а"
)

func GenderLabel(sex model.Sex) Gender {
	switch sex {
	case model.SexMale:
		return GenderMasculine
	case model.SexFemale:
		return GenderFeminine
	default:
		return GenderNeuter
	}
}

type UserLeaveParams struct {
	User   string
	Gender Gender
}

func (UserLeaveParams) Template() TemplateId {
	return UserLeave
}

func (UserLeaveParams) reason() string {
	return ""
}

func (p UserLeaveParams) values() map[string]string {
	return map[string]string{"user": p.User, "gender": string(p.Gender)}
}

type KickUserParams struct {
	User     string
	Punisher string
	Gender   Gender
	Reason   string
}

func (KickUserParams) Template() TemplateId {
	return KickUser
}

func (p KickUserParams) reason() string {
	return p.Reason
}

func (p KickUserParams) values() map[string]string {
	return map[string]string{"user": p.User, "punisher": p.Punisher, "gender": string(p.Gender)}
}

type MuteUserParams struct {
	User     string
	Punisher string
	Gender   Gender
	Time     string
	Reason   string
}

func (MuteUserParams) Template() TemplateId {
	return MuteUser
}

func (p MuteUserParams) reason() string {
	return p.Reason
}

func (p MuteUserParams) values() map[string]string {
	return map[string]string{"user": p.User, "punisher": p.Punisher, "gender": string(p.Gender), "time": p.Time}
}

type ChangeSettingParams struct {
	User    string
	Gender  Gender
	Setting string
	Enabled bool
}

func (ChangeSettingParams) Template() TemplateId {
	return ChangeSetting
}

func (ChangeSettingParams) reason() string {
	return ""
}

func (p ChangeSettingParams) values() map[string]string {
	state := "вы"
	if p.Enabled {
		state = "в"
	}
	return map[string]string{"user": p.User, "gender": string(p.Gender), "setting": p.Setting, "state": state}
}

// Render fills the template of p. A non-empty reason appends the reason clause.
func Render(p Params) string {
	text := substitute(templates[p.Template()], p.values())
	if reason := strings.TrimSpace(p.reason()); reason != "" {
		text += reasonClause + reason
	}
	return text
}

// substitute replaces {key} placeholders. Unknown keys are left as is.
func substitute(template string, values map[string]string) string {
	var b strings.Builder
	b.Grow(len(template))

	for {
		start := strings.IndexByte(template, '{')
		if start < 0 {
			break
		}
		end := strings.IndexByte(template[start:], '}')
		if end < 0 {
			break
		}
		end += start

		key := template[start+1 : end]
		b.WriteString(template[:start])
		if value, ok := values[key]; ok {
			b.WriteString(value)
		} else {
			b.WriteString(template[start : end+1])
		}
		template = template[end+1:]
	}
	b.WriteString(template)

	return b.String()
}
