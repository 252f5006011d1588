package create_appointment

import "errors"

var (
	// ErrCompanyNotFound возвращается, когда барбершоп не найден
	ErrCompanyNotFound = errors.New("create_appointment: company not found")

	// ErrBarberNotFound возвращается, когда барбер не найден в барбершопе
	ErrBarberNotFound = errors.New("create_appointment: barber not found")

	// ErrInvalidDate возвращается при некорректной дате записи
	ErrInvalidDate = errors.New("create_appointment: invalid appointment date")

	// ErrCompanyClosed возвращается, когда барбершоп закрыт в указанную дату
	ErrCompanyClosed = errors.New("create_appointment: company is closed on this date")

	// ErrOutsideWorkingHours возвращается, когда запись не помещается в рабочие часы
	ErrOutsideWorkingHours = errors.New("create_appointment: appointment is outside working hours")

	// ErrSlotNotAvailable возвращается, когда выбранное время конфликтует с другой записью
	ErrSlotNotAvailable = errors.New("create_appointment: slot is not available")

	// ErrTooLateToBook возвращается при попытке записаться на уже прошедшее время
	ErrTooLateToBook = errors.New("create_appointment: too late to book this slot")

	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = errors.New("create_appointment: invalid input data")

	// ErrInternal возвращается при внутренних ошибках usecase
	ErrInternal = errors.New("create_appointment: internal error")
)
