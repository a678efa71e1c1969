package extract_test

import (
	"fmt"

	"idextract/internal/extract"
)

func ExampleNormalizeDate() {
	fmt.Println(extract.NormalizeDate("15JAN1985"))
	fmt.Println(extract.NormalizeDate("03/15/1985"))
	fmt.Println(extract.NormalizeDate("Unknown"))
	// Output:
	// 15 Jan 1985
	// 03/15/1985
	// Unknown
}
