package export

import (
	"encoding/csv"
	"encoding/json"
	"io"
	"strconv"

	"github.com/avigny/taskforge/core/model"
)

// WriteJSON writes the backend task projection to w in JSON format.
func WriteJSON(w io.Writer, tasks []model.BackendTask) error {
	enc := json.NewEncoder(w)
	return enc.Encode(tasks)
}

// WriteCSV writes the backend task projection to w in CSV format.
func WriteCSV(w io.Writer, tasks []model.BackendTask) error {
	cw := csv.NewWriter(w)
	if err := cw.Write([]string{"title", "consume_time", "deadline", "user_role"}); err != nil {
		return err
	}
	for _, t := range tasks {
		rec := []string{
			t.Title,
			strconv.FormatFloat(t.ConsumeTime, 'f', -1, 64),
			t.Deadline,
			t.UserRole,
		}
		if err := cw.Write(rec); err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}
