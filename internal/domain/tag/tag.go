package tag

import "github.com/Ngapa/banyu-job-vacation/internal/common"

type Tag struct {
	ID   common.UUID `json:"id"`
	Name string      `json:"name"`
}
