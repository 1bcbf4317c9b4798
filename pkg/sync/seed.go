package sync

import (
	"github.com/edulab/learning-platform-backend/internal/models"
)

// DefaultModules is the seed dataset used when the local cache holds
// nothing usable. Matches the modules the platform ships with.
func DefaultModules() []models.Module {
	return []models.Module{
		{
			ID:          "module-1",
			Title:       "Forløb#3 Dokumentarforløb",
			Date:        "ti 27/8",
			Description: "Vi fortsætter arbejdet med Ørneflugt. Alle skal læse side 2 øverst om historisk læsning.",
			Activities:  []models.Activity{},
		},
		{
			ID:          "module-2",
			Title:       "Skriveforløb - Modul 2",
			Date:        "ti 20/8",
			Subtitle:    "Skrivemodul 2",
			Description: "I dette forløb skal vi arbejde med forskellige skriveteknikker.",
			Activities:  []models.Activity{},
		},
		{
			ID:          "module-3",
			Title:       "Analysemetoder - Modul 3",
			Date:        "fr 23/8",
			Description: "Gennemgang af forskellige analysemetoder.",
			Activities:  []models.Activity{},
		},
	}
}
