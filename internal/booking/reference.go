package booking

import (
	"strconv"
	"strings"

	"pitchlink/internal/apperr"

	"github.com/speps/go-hashids/v2"
)

const referencePrefix = "PL-"

// References turns booking ids into short public codes and back.
type References struct {
	h *hashids.HashID
}

func NewReferences(salt string) (*References, error) {
	hd := hashids.NewData()
	hd.Salt = salt
	hd.MinLength = 5

	h, err := hashids.NewWithData(hd)
	if err != nil {
		return nil, err
	}
	return &References{h: h}, nil
}

func (r *References) Encode(id int) string {
	s, err := r.h.Encode([]int{id})
	if err != nil {
		return ""
	}
	return referencePrefix + s
}

func (r *References) Decode(ref string) (int, bool) {
	code := strings.TrimPrefix(ref, referencePrefix)
	if code == ref {
		return 0, false
	}
	ids, err := r.h.DecodeWithError(code)
	if err != nil || len(ids) != 1 || ids[0] <= 0 {
		return 0, false
	}
	return ids[0], true
}

// Resolve accepts either a numeric id or a reference.
func (r *References) Resolve(key string) (int, error) {
	if id, err := strconv.Atoi(key); err == nil && id > 0 {
		return id, nil
	}
	if id, ok := r.Decode(key); ok {
		return id, nil
	}
	return 0, apperr.NotFound("booking")
}
