package api

import (
	"bytes"
	"encoding/json"
	"fmt"

	orderedmap "github.com/wk8/go-ordered-map/v2"

	"github.com/ziadkadry99/diana/internal/state"
)

// Stats is the account usage snapshot returned by GET /api/stats.
type Stats struct {
	Used      int  `json:"used"`
	Remaining int  `json:"remaining"`
	IsPremium bool `json:"is_premium"`
}

// ClassProbability is one entry of a prediction's probability mapping.
type ClassProbability struct {
	Class   string
	Percent float64
}

// Prediction is the body of a successful POST /predict. Probabilities keep
// the order in which the server returned them.
type Prediction struct {
	Prediction    string
	Confidence    float64
	Probabilities []ClassProbability
	// Category is the optional explicit styling code: normal, benign or
	// malignant.
	Category string
}

type predictionBody struct {
	Prediction    *string                                 `json:"prediction"`
	Confidence    float64                                 `json:"confidence"`
	Probabilities *orderedmap.OrderedMap[string, float64] `json:"probabilities"`
	Category      string                                  `json:"category,omitempty"`
}

func (p *Prediction) UnmarshalJSON(data []byte) error {
	var body predictionBody
	if err := json.Unmarshal(data, &body); err != nil {
		return err
	}
	if body.Prediction == nil {
		return fmt.Errorf("prediction body has no prediction field")
	}
	p.Prediction = *body.Prediction
	p.Confidence = body.Confidence
	p.Category = body.Category
	p.Probabilities = nil
	if body.Probabilities != nil {
		for pair := body.Probabilities.Oldest(); pair != nil; pair = pair.Next() {
			p.Probabilities = append(p.Probabilities, ClassProbability{Class: pair.Key, Percent: pair.Value})
		}
	}
	return nil
}

func (p Prediction) MarshalJSON() ([]byte, error) {
	probs := orderedmap.New[string, float64]()
	for _, cp := range p.Probabilities {
		probs.Set(cp.Class, cp.Percent)
	}
	body := predictionBody{
		Prediction:    &p.Prediction,
		Confidence:    p.Confidence,
		Probabilities: probs,
		Category:      p.Category,
	}
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	if err := enc.Encode(body); err != nil {
		return nil, err
	}
	return bytes.TrimRight(buf.Bytes(), "\n"), nil
}

// Credentials are the login form fields.
type Credentials struct {
	Email    string
	Password string
}

// Registration are the signup form fields.
type Registration struct {
	Name            string
	Email           string
	Password        string
	PasswordConfirm string
}

type authBody struct {
	Success bool        `json:"success"`
	User    *state.User `json:"user"`
	Message string      `json:"message"`
}

// Profile is the body of GET /api/user/profile.
type Profile struct {
	User  *state.User `json:"user"`
	Stats Stats       `json:"stats"`
}
