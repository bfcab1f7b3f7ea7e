package asset

import (
	"log/slog"

	"github.com/shirou/gopsutil/v4/mem"
)

// fallbackBudget is used when system memory cannot be queried.
const fallbackBudget = 512 << 20

// DefaultCacheBudget returns 80% of available memory, capped at 90% of total.
func DefaultCacheBudget() int64 {
	vm, err := mem.VirtualMemory()
	if err != nil || vm.Total == 0 {
		slog.Warn("cannot query system memory, using fallback cache budget",
			"budget_mb", fallbackBudget>>20, "err", err)
		return fallbackBudget
	}
	return budgetFor(vm.Available, vm.Total)
}

func budgetFor(available, total uint64) int64 {
	b := available / 10 * 8
	if limit := total / 10 * 9; b > limit {
		b = limit
	}
	return int64(b)
}
