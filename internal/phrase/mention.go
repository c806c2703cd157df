package phrase

import "fmt"

// MentionName formats a mention labelled with name. Communities get the «name» label.
func MentionName(id int64, name string) string {
	if id < 0 {
		return MentionLabel(id, fmt.Sprintf("Сообщество «%s»", name))
	}
	return MentionLabel(id, name)
}

// MentionLabel formats a mention with an arbitrary label.
func MentionLabel(id int64, label string) string {
	if id < 0 {
		return fmt.Sprintf("[club%d|%s]", -id, label)
	}
	return fmt.Sprintf("[id%d|%s]", id, label)
}
