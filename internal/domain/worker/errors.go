package worker

import "errors"

var (
	ErrWorkerNotFound     = errors.New("worker not found")
	ErrEmployeeCodeExists = errors.New("employee code already exists")
)
