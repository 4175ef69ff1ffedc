package main

import (
	"encoding/json"
	"flag"
	"fmt"
	"math/rand"
	"net/http"
	"net/url"
	"time"

	"github.com/go-resty/resty/v2"
	"github.com/sirupsen/logrus"
	vegeta "github.com/tsenart/vegeta/v12/lib"
)

var (
	targetHost = flag.String("target", "http://localhost:8080", "base URL of a running service")
	wikiURL    = flag.String("wiki", "", "DokuWiki namespace URL for /wiki/reviews; skipped when empty")
	rps        = flag.Int("rps", 5, "requests per second")
	duration   = flag.Duration("duration", 3*time.Minute, "attack duration")
)

type questionnaireInput struct {
	Name             string `json:"name"`
	InstructorID     int64  `json:"instructor_id"`
	Type             string `json:"type"`
	MaxQuestionScore int    `json:"max_question_score"`
}

type createdQuestionnaire struct {
	Questionnaire struct {
		ID int64 `json:"id"`
	} `json:"questionnaire"`
}

var (
	instructors    []int64
	questionnaires []int64
	logger         = logrus.New()
)

// Seed
func seedData(client *resty.Client) error {
	logger.Info("Seeding: creating questionnaires...")

	runID := time.Now().Unix()
	for i := 1; i <= 20; i++ {
		instructorID := int64(i%5 + 1)
		var created createdQuestionnaire

		resp, err := client.R().
			SetBody(questionnaireInput{
				Name:             fmt.Sprintf("Load rubric %d-%02d", runID, i),
				InstructorID:     instructorID,
				Type:             "ReviewQuestionnaire",
				MaxQuestionScore: 5,
			}).
			SetResult(&created).
			Post("/questionnaires")
		if err != nil {
			return err
		}
		if resp.IsError() {
			logger.Warnf("POST /questionnaires returned %d", resp.StatusCode())
			continue
		}

		id := created.Questionnaire.ID
		rows := make([]map[string]string, 0, 5)
		for q := 1; q <= 5; q++ {
			rows = append(rows, map[string]string{
				"txt":      fmt.Sprintf("Question %d", q),
				"type":     "Criterion",
				"seq":      fmt.Sprint(q),
				"weight":   "1",
				"advice_1": "needs work",
				"advice_5": "excellent",
			})
		}
		resp, err = client.R().SetBody(map[string]interface{}{"rows": rows}).Post(fmt.Sprintf("/questionnaires/%d/import", id))
		if err != nil {
			return err
		}
		if resp.IsError() {
			logger.Warnf("POST /questionnaires/%d/import returned %d", id, resp.StatusCode())
		}

		resp, err = client.R().
			SetBody(map[string]interface{}{
				"assignment_id":        1000 + i,
				"assignment_name":      fmt.Sprintf("Load assignment %d", i),
				"questionnaire_weight": 50,
			}).
			Post(fmt.Sprintf("/questionnaires/%d/assignments", id))
		if err != nil {
			return err
		}
		if resp.IsError() {
			logger.Warnf("POST /questionnaires/%d/assignments returned %d", id, resp.StatusCode())
		}

		questionnaires = append(questionnaires, id)
		instructors = append(instructors, instructorID)
		time.Sleep(20 * time.Millisecond)
	}

	if len(questionnaires) == 0 {
		return fmt.Errorf("no questionnaires were created")
	}

	logger.WithField("questionnaires", len(questionnaires)).Info("Seed completed")
	return nil
}

// Targeter
func makeTargeter() vegeta.Targeter {
	jsonHeader := map[string][]string{"Content-Type": {"application/json"}}
	acceptHeader := map[string][]string{"Accept": {"application/json"}}

	return func(t *vegeta.Target) error {
		r := rand.Float64()
		idx := rand.Intn(len(questionnaires))
		id := questionnaires[idx]

		// 40% GET /questionnaires/{id}
		if r < 0.40 {
			t.Method = http.MethodGet
			t.URL = fmt.Sprintf("%s/questionnaires/%d", *targetHost, id)
			t.Body = nil
			t.Header = acceptHeader
			return nil
		}

		// 20% GET /questionnaires?instructor_id
		if r < 0.60 {
			t.Method = http.MethodGet
			t.URL = fmt.Sprintf("%s/questionnaires?instructor_id=%d", *targetHost, instructors[idx])
			t.Body = nil
			t.Header = acceptHeader
			return nil
		}

		// 15% GET max-score
		if r < 0.75 {
			t.Method = http.MethodGet
			t.URL = fmt.Sprintf("%s/questionnaires/%d/max-score", *targetHost, id)
			t.Body = nil
			t.Header = acceptHeader
			return nil
		}

		// 15% POST weighted-score
		if r < 0.90 || *wikiURL == "" {
			body, _ := json.Marshal(map[string]interface{}{
				"assignment_id": 1001 + idx,
				"scores": map[string]interface{}{
					"review": map[string]float64{"avg": rand.Float64() * 100},
				},
			})
			t.Method = http.MethodPost
			t.URL = fmt.Sprintf("%s/questionnaires/%d/weighted-score", *targetHost, id)
			t.Body = body
			t.Header = jsonHeader
			return nil
		}

		// 10% GET /wiki/reviews
		t.Method = http.MethodGet
		t.URL = fmt.Sprintf("%s/wiki/reviews?assignment_url=%s", *targetHost, url.QueryEscape(*wikiURL))
		t.Body = nil
		t.Header = acceptHeader
		return nil
	}
}

// Attack
func runAttack() {
	rate := vegeta.Rate{Freq: *rps, Per: time.Second}
	attacker := vegeta.NewAttacker()
	targeter := makeTargeter()

	var metrics vegeta.Metrics

	logger.Infof("Starting attack: %s for %s", *targetHost, *duration)
	for res := range attacker.Attack(targeter, rate, *duration, "load-test") {
		metrics.Add(res)
	}
	metrics.Close()

	fmt.Println("=== Results ===")
	fmt.Printf("Requests: %d\n", metrics.Requests)
	fmt.Printf("Success rate: %.4f%%\n", metrics.Success*100)
	fmt.Printf("Latency mean: %s\n", metrics.Latencies.Mean)
	fmt.Printf("Latency P95: %s\n", metrics.Latencies.P95)
	fmt.Printf("Latency P99: %s\n", metrics.Latencies.P99)
	for code, count := range metrics.StatusCodes {
		fmt.Printf("Status %s: %d\n", code, count)
	}
}

func main() {
	flag.Parse()

	client := resty.New().
		SetBaseURL(*targetHost).
		SetTimeout(10*time.Second).
		SetHeader("Content-Type", "application/json")

	if err := seedData(client); err != nil {
		logger.Fatalf("Seed failed: %v", err)
	}

	runAttack()
}
