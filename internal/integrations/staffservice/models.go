package staffservice

// Company модель барбершопа из StaffService
type Company struct {
	ID           int64        `json:"id"`
	Name         string       `json:"name"`
	ManagerIDs   []int64      `json:"manager_ids"`
	WorkingHours WeekSchedule `json:"working_hours"`
}

// WeekSchedule расписание работы барбершопа по дням недели
type WeekSchedule struct {
	Monday    DaySchedule `json:"monday"`
	Tuesday   DaySchedule `json:"tuesday"`
	Wednesday DaySchedule `json:"wednesday"`
	Thursday  DaySchedule `json:"thursday"`
	Friday    DaySchedule `json:"friday"`
	Saturday  DaySchedule `json:"saturday"`
	Sunday    DaySchedule `json:"sunday"`
}

// DaySchedule расписание на один день недели
type DaySchedule struct {
	IsOpen    bool    `json:"is_open"`
	OpenTime  *string `json:"open_time,omitempty"`  // "HH:MM"
	CloseTime *string `json:"close_time,omitempty"` // "HH:MM"
}

// Barber модель барбера из StaffService
type Barber struct {
	ID          int64  `json:"id"`
	CompanyID   int64  `json:"company_id"`
	DisplayName string `json:"display_name"`
	IsActive    bool   `json:"is_active"`
}

// ErrorResponse модель ошибки от StaffService
type ErrorResponse struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
}
