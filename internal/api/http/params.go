package http

import (
	"fmt"
	"net/http"
	"strconv"
	"strings"

	"skillswap-backend/internal/service"

	"github.com/gorilla/mux"
)

func pathID(r *http.Request, name string) (int32, error) {
	raw := mux.Vars(r)[name]
	id, err := strconv.ParseInt(raw, 10, 32)
	if err != nil || id <= 0 {
		return 0, &service.ValidationError{Fields: []service.FieldError{{Field: name, Error: "must be a positive integer"}}}
	}
	return int32(id), nil
}

func queryInt32(r *http.Request, name string, def int32) (int32, error) {
	raw := r.URL.Query().Get(name)
	if raw == "" {
		return def, nil
	}
	v, err := strconv.ParseInt(raw, 10, 32)
	if err != nil {
		return 0, &service.ValidationError{Fields: []service.FieldError{{Field: name, Error: "must be an integer"}}}
	}
	return int32(v), nil
}

func (s *Server) pageParams(r *http.Request) (page, size int32, err error) {
	if page, err = queryInt32(r, "page", 1); err != nil {
		return 0, 0, err
	}
	if size, err = queryInt32(r, "page_size", s.pageSize); err != nil {
		return 0, 0, err
	}
	return page, size, nil
}

// queryList accepts both repeated parameters and comma-separated values.
func queryList(r *http.Request, name string) []string {
	var out []string
	for _, v := range r.URL.Query()[name] {
		for _, part := range strings.Split(v, ",") {
			if part = strings.TrimSpace(part); part != "" {
				out = append(out, part)
			}
		}
	}
	return out
}

func queryBool(r *http.Request, name string) bool {
	v, _ := strconv.ParseBool(r.URL.Query().Get(name))
	return v
}

func badQuery(name string, err error) error {
	return &service.ValidationError{Fields: []service.FieldError{{Field: name, Error: fmt.Sprint(err)}}}
}
