package runstore

import (
	"fmt"

	"github.com/quantgeo/scoresmith/schema"
)

// PrintStoreStatus prints run store status information.
func PrintStoreStatus(status schema.StoreStatus) {
	fmt.Printf("Store Backend: %s\n", status.Backend)
	if status.Backend == schema.NoneBackend {
		fmt.Println("Run tracking is disabled.")
		return
	}
	fmt.Printf("Location: %s\n", status.Location)
	fmt.Printf("Total Runs: %d\n", status.TotalRuns)
	fmt.Printf("Total Formulas: %d\n", status.TotalFormulas)
	if status.TotalRuns > 0 {
		fmt.Printf("Last Run: %s\n", status.LastRunTime.Format("2006-01-02 15:04:05"))
	}
}

// PrintRuns prints recent generation runs, newest first.
func PrintRuns(runs []schema.GenerationRun) {
	if len(runs) == 0 {
		fmt.Println("No generation runs recorded.")
		return
	}
	for _, run := range runs {
		end := "in progress"
		if run.EndTime != nil {
			end = run.EndTime.Format("2006-01-02 15:04:05")
		}
		fmt.Printf("Run %d: started %s, ended %s, %d features\n",
			run.RunID, run.StartTime.Format("2006-01-02 15:04:05"), end, run.TotalFeatures)
	}
}
