package periods

import (
	"strconv"

	twmerge "github.com/Oudwins/tailwind-merge-go"
)

const baseButtonClass = "inline-flex items-center gap-2 rounded bg-blue-600 px-4 py-2 text-white hover:bg-blue-700 disabled:cursor-not-allowed disabled:opacity-50"

func buttonClass(extra string) string {
	return twmerge.Merge(baseButtonClass, extra)
}

const presetButtonClass = "bg-gray-100 px-2 py-1 text-sm text-gray-800 hover:bg-gray-200"

func itoa(n int) string {
	return strconv.Itoa(n)
}
