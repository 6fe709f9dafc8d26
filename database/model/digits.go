package model

import (
	"database/sql/driver"
	"fmt"

	"github.com/goccy/go-json"
)

// Digits is a fixed sequence of single-digit numbers stored as a JSON array
// in a text column.
type Digits []int

func (d Digits) Value() (driver.Value, error) {
	data, err := json.Marshal([]int(d))
	if err != nil {
		return nil, err
	}
	return string(data), nil
}

func (d *Digits) Scan(src any) error {
	var data []byte
	switch v := src.(type) {
	case string:
		data = []byte(v)
	case []byte:
		data = v
	case nil:
		*d = nil
		return nil
	default:
		return fmt.Errorf("cannot scan %T into Digits", src)
	}
	return json.Unmarshal(data, (*[]int)(d))
}

func (d Digits) String() string {
	s := ""
	for i, n := range d {
		if i > 0 {
			s += ", "
		}
		s += fmt.Sprint(n)
	}
	return s
}
