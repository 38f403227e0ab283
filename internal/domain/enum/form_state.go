package enum

import "encoding/json"

// FormState is the lifecycle position of an open kwitansi form
type FormState int

const (
	FormStateEmpty       FormState = 0
	FormStateEditing     FormState = 1
	FormStateReadyToSave FormState = 2
	FormStateSaved       FormState = 3
	FormStateDiscarded   FormState = 4
)

func (s FormState) String() string {
	names := [...]string{"empty", "editing", "ready_to_save", "saved", "discarded"}
	if int(s) < 0 || int(s) >= len(names) {
		return "empty"
	}
	return names[s]
}

// IsTerminal reports whether the form can no longer change
func (s FormState) IsTerminal() bool {
	return s == FormStateSaved || s == FormStateDiscarded
}

func (s FormState) MarshalJSON() ([]byte, error) {
	return json.Marshal(s.String())
}

func (s *FormState) UnmarshalJSON(data []byte) error {
	var str string
	if err := json.Unmarshal(data, &str); err != nil {
		return err
	}
	*s = FormStateEmpty
	for i := FormStateEmpty; i <= FormStateDiscarded; i++ {
		if i.String() == str {
			*s = i
			break
		}
	}
	return nil
}
