package recommend_slots

import (
	"github.com/kosmatoff/BMS-SchedulingService/internal/domain"
)

// slotCandidate свободный интервал одного барбера, способный вместить услугу.
// Все времена - в минутах от полуночи.
type slotCandidate struct {
	startMin int
	endMin   int

	// Буферы, фактически применённые к кандидату
	bufferBeforeMin int
	bufferAfterMin  int

	// Количество записей подряд непосредственно перед кандидатом
	consecutiveBefore int
}

// busyInterval занятый интервал записи в минутах от полуночи
type busyInterval struct {
	startMin int
	endMin   int
}

// findCandidateSlots проходит по отсортированным записям барбера и находит
// свободные интервалы, вмещающие услугу с учетом буферов.
//
// Алгоритм: курсор ставится на начало рабочего дня; для каждой записи
// проверяется промежуток между курсором и её началом, затем курсор
// переносится на конец записи плюс сервисный буфер. Последний промежуток
// проверяется против конца рабочего дня с буфером конца дня.
//
// nowMin ограничивает курсор снизу (подбор на сегодня); -1 - без ограничения.
// Из каждого подходящего промежутка выдается один кандидат, привязанный
// к самой ранней допустимой позиции.
func findCandidateSlots(
	appointments []*domain.Appointment,
	openMin int,
	closeMin int,
	durationMin int,
	rules domain.RuleSet,
	nowMin int,
) []slotCandidate {
	serviceBuffer := rules.ServiceBufferMinutes()
	prepBuffer := rules.ClientPrepMinutes()
	endOfDayBuffer := rules.EndOfDayBufferMinutes()

	busy := toBusyIntervals(appointments)

	candidates := make([]slotCandidate, 0)

	cursor := openMin
	if nowMin > cursor {
		cursor = nowMin
	}

	afterAppointment := false

	for _, interval := range busy {
		// Промежуток между курсором и началом записи
		candidate, ok := fitIntoGap(cursor, interval.startMin, durationMin, prepBuffer, serviceBuffer, afterAppointment)
		if ok {
			candidate.consecutiveBefore = countConsecutiveBefore(busy, candidate.startMin)
			candidates = append(candidates, candidate)
		}

		// Переносим курсор на конец записи плюс сервисный буфер
		next := interval.endMin + serviceBuffer
		if next > cursor {
			cursor = next
			afterAppointment = true
		}
	}

	// Последний промежуток - до конца рабочего дня, вместо сервисного буфера
	// применяется буфер конца дня
	candidate, ok := fitIntoGap(cursor, closeMin-endOfDayBuffer, durationMin, prepBuffer, 0, afterAppointment)
	if ok {
		candidate.bufferAfterMin = closeMin - candidate.endMin
		candidate.consecutiveBefore = countConsecutiveBefore(busy, candidate.startMin)
		candidates = append(candidates, candidate)
	}

	return candidates
}

// fitIntoGap проверяет, вмещается ли услуга в промежуток [gapStart, gapEnd).
// Подготовка клиента (prepBuffer) сдвигает начало слота, если промежуток
// следует за записью; trailingBuffer резервирует время перед следующей записью.
func fitIntoGap(gapStart, gapEnd, durationMin, prepBuffer, trailingBuffer int, afterAppointment bool) (slotCandidate, bool) {
	if gapEnd <= gapStart {
		return slotCandidate{}, false
	}

	startMin := gapStart
	bufferBefore := 0
	if afterAppointment {
		startMin += prepBuffer
		bufferBefore = prepBuffer
	}

	endMin := startMin + durationMin
	if endMin+trailingBuffer > gapEnd {
		return slotCandidate{}, false
	}

	return slotCandidate{
		startMin:        startMin,
		endMin:          endMin,
		bufferBeforeMin: bufferBefore,
		bufferAfterMin:  gapEnd - endMin,
	}, true
}

// countConsecutiveBefore считает цепочку записей подряд непосредственно
// перед слотом. Записи считаются идущими подряд, если зазор между ними
// не превышает domain.ConsecutiveAdjacencyMinutes.
func countConsecutiveBefore(busy []busyInterval, slotStartMin int) int {
	count := 0
	boundary := slotStartMin

	// Идем с конца: записи отсортированы по возрастанию начала
	for i := len(busy) - 1; i >= 0; i-- {
		interval := busy[i]
		if interval.endMin > boundary {
			// Запись начинается после слота (или пересекает его) - пропускаем
			continue
		}
		if boundary-interval.endMin > domain.ConsecutiveAdjacencyMinutes {
			break
		}
		count++
		boundary = interval.startMin
	}

	return count
}

// toBusyIntervals конвертирует активные записи в занятые интервалы.
// Записи с некорректным временем пропускаются.
func toBusyIntervals(appointments []*domain.Appointment) []busyInterval {
	busy := make([]busyInterval, 0, len(appointments))

	for _, appt := range appointments {
		if !appt.IsActive() {
			continue
		}

		startMin, err := appt.StartTime.Minutes()
		if err != nil {
			continue
		}

		busy = append(busy, busyInterval{
			startMin: startMin,
			endMin:   startMin + appt.DurationMinutes,
		})
	}

	return busy
}
