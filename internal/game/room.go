package game

import (
	"fmt"

	"github.com/pixil98/go-errors"
)

// Room is a location definition. Exits reference other rooms by key, so the
// graph can be cyclic without any ownership cycles. Items lists the keys of
// catalog items placed here at world-build time.
type Room struct {
	Name        string            `json:"name"`
	Description string            `json:"description"`
	Exits       map[string]string `json:"exits,omitempty"` // direction -> room key
	Items       []string          `json:"items,omitempty"` // catalog item keys
	Dangerous   bool              `json:"dangerous,omitempty"`
	DangerDesc  string            `json:"danger_desc,omitempty"`
}

// Validate satisfies storage.ValidatingSpec. Exit destinations are checked
// against the full room set in NewWorld, once every room is loaded.
func (r *Room) Validate() error {
	el := errors.NewErrorList()

	if r.Name == "" {
		el.Add(fmt.Errorf("room name is required"))
	}

	for dir, dest := range r.Exits {
		if dest == "" {
			el.Add(fmt.Errorf("exit %s: destination room key is required", dir))
		}
	}

	if r.Dangerous && r.DangerDesc == "" {
		el.Add(fmt.Errorf("dangerous rooms need a danger_desc"))
	}

	return el.Err()
}
