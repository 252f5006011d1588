package recommend_slots

import "errors"

var (
	// ErrCompanyNotFound возвращается, когда барбершоп не найден
	ErrCompanyNotFound = errors.New("recommend_slots: company not found")

	// ErrBarberNotFound возвращается, когда барбер не найден или не работает в барбершопе
	ErrBarberNotFound = errors.New("recommend_slots: barber not found")

	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = errors.New("recommend_slots: invalid input data")

	// ErrInternal возвращается при внутренних ошибках usecase
	ErrInternal = errors.New("recommend_slots: internal error")
)
