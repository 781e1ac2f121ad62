// Package timeslot работает со строковыми интервалами вида "HH:MM-HH:MM",
// которые служат ключами расписания внутри одной даты.
package timeslot

import (
	"fmt"
	"strconv"
	"strings"
)

// ErrInvalidFormat возвращается когда строка времени не парсится как "HH:MM".
var ErrInvalidFormat = fmt.Errorf("invalid time format, expected HH:MM")

// ToMinutes переводит "HH:MM" в минуты от начала суток
func ToMinutes(t string) (int, error) {
	parts := strings.Split(t, ":")
	if len(parts) != 2 {
		return 0, fmt.Errorf("%w: %q", ErrInvalidFormat, t)
	}

	hours, err := strconv.Atoi(parts[0])
	if err != nil {
		return 0, fmt.Errorf("%w: %q", ErrInvalidFormat, t)
	}

	minutes, err := strconv.Atoi(parts[1])
	if err != nil {
		return 0, fmt.Errorf("%w: %q", ErrInvalidFormat, t)
	}

	return hours*60 + minutes, nil
}

// Normalize приводит время к каноничному zero-padded виду "HH:MM".
// Только каноничная форма даёт корректное строковое сравнение в Overlaps,
// поэтому всё, что попадает в ключи слотов, должно пройти через Normalize.
func Normalize(t string) (string, error) {
	total, err := ToMinutes(t)
	if err != nil {
		return "", err
	}

	hours, minutes := total/60, total%60
	if total < 0 || hours > 23 || minutes > 59 {
		return "", fmt.Errorf("%w: %q", ErrInvalidFormat, t)
	}

	return fmt.Sprintf("%02d:%02d", hours, minutes), nil
}

// Format собирает ключ слота из времени начала и конца
func Format(start, end string) string {
	return start + "-" + end
}

// Split разбирает ключ слота обратно на начало и конец
func Split(slot string) (start, end string, err error) {
	parts := strings.SplitN(slot, "-", 2)
	if len(parts) != 2 {
		return "", "", fmt.Errorf("invalid time slot %q", slot)
	}
	return parts[0], parts[1], nil
}

// Overlaps проверяет пересекается ли существующий слот с кандидатом.
// Сравнение строковое: для zero-padded "HH:MM" оно эквивалентно числовому.
// Покрывает три случая: новый интервал начинается внутри существующего,
// заканчивается внутри него, либо целиком его накрывает.
func Overlaps(existingSlot, newStart, newEnd string) bool {
	existingStart, existingEnd, err := Split(existingSlot)
	if err != nil {
		return false
	}

	return (newStart >= existingStart && newStart < existingEnd) ||
		(newEnd > existingStart && newEnd <= existingEnd) ||
		(newStart <= existingStart && newEnd >= existingEnd)
}
