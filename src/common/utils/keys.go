package utils

import "fmt"

func BuildChartKey(id string) string {
	return fmt.Sprintf("chart:%s", id)
}
