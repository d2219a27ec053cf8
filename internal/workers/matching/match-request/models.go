// internal/workers/matching/match-request/models.go
package matchrequest

import (
	"encoding/json"

	"matching-workers/internal/models"
)

// Input carries the request body as sent to the original API. It is decoded
// into a company or individual request once the track is known.
type Input struct {
	Track   models.Track    `json:"track"`
	Request json.RawMessage `json:"request"`
}

type Output struct {
	Track                    models.Track                     `json:"track"`
	CompanyRecommendation    *models.CompanyRecommendation    `json:"companyRecommendation,omitempty"`
	IndividualRecommendation *models.IndividualRecommendation `json:"individualRecommendation,omitempty"`
}
