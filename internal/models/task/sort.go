package task

import (
	"slices"
	"time"
)

// Less задаёт порядок списка задач:
// незавершённые раньше завершённых, затем приоритет high > medium > low,
// затем срок по возрастанию (только если срок есть у обеих),
// и в конце более новые по CreatedAt.
func Less(a, b Task) bool {
	return compare(a, b) < 0
}

func compare(a, b Task) int {
	if a.Completed != b.Completed {
		if a.Completed {
			return 1
		}
		return -1
	}

	if ra, rb := a.Priority.Rank(), b.Priority.Rank(); ra != rb {
		return ra - rb
	}

	if a.DueDate != nil && b.DueDate != nil {
		if c := a.DueDate.Compare(*b.DueDate); c != 0 {
			return c
		}
	}

	return b.CreatedAt.Compare(a.CreatedAt)
}

// Sort сортирует на месте, равные элементы сохраняют исходный порядок.
func Sort(tasks []Task) {
	slices.SortStableFunc(tasks, compare)
}

// SameDay сравнивает календарные даты в локальной зоне, время суток не учитывается.
func SameDay(a, b time.Time) bool {
	return a.Local().Format(time.DateOnly) == b.Local().Format(time.DateOnly)
}
