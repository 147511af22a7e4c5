package materials

// MaterialStatus — состояние материала в хранилище.
type MaterialStatus struct {
	Key     string `json:"key"`
	Expired bool   `json:"expired"`
}

// ListResponse — ответ со списком зарегистрированных материалов (в порядке регистрации).
type ListResponse struct {
	Items []MaterialStatus `json:"items"`
}

// ErrorResponse — ответ с ошибкой.
type ErrorResponse struct {
	Error string `json:"error"`
}

// SweepResponse — итог прохода, запущенного вручную.
type SweepResponse struct {
	Status string `json:"status"`
	Error  string `json:"error,omitempty"`
}
