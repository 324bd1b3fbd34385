package edit

import (
	"encoding/json"
	"fmt"
	"os"

	"gridedit.dev/pkg/diag"
	"gridedit.dev/pkg/prog"
	"gridedit.dev/pkg/script"
)

// Reports commands that would halt the script.
func check(fds [3]*os.File, code string, jsonOutput bool) error {
	errs := script.Check(script.Source{Name: "[script]", Code: code})
	if jsonOutput {
		fmt.Fprintln(fds[1], string(errorsToJSON(errs)))
	} else {
		for _, err := range errs {
			diag.ShowError(fds[2], err)
		}
	}
	if len(errs) > 0 {
		return prog.Exit(2)
	}
	return nil
}

type errorInJSON struct {
	FileName string `json:"fileName"`
	Start    int    `json:"start"`
	End      int    `json:"end"`
	Message  string `json:"message"`
}

// Converts errors to JSON, for consumption by editors.
func errorsToJSON(errs []*diag.Error) []byte {
	var jsonErrors []errorInJSON
	for _, err := range errs {
		jsonErrors = append(jsonErrors, errorInJSON{
			err.Context.Name, err.Context.From, err.Context.To, err.Message})
	}
	if jsonErrors == nil {
		jsonErrors = []errorInJSON{}
	}
	bs, _ := json.Marshal(jsonErrors)
	return bs
}
