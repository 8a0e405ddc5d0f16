// Command triage runs one symptom check against a running API and prints the
// result: consent, session creation, analysis, then status polling.
package main

import (
	"encoding/json"
	"flag"
	"fmt"
	"os"
	"time"

	"github.com/fatih/color"
	"github.com/go-resty/resty/v2"
	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/joho/godotenv"
)

type envelope struct {
	Success bool            `json:"success"`
	Message string          `json:"message"`
	Data    json.RawMessage `json:"data"`
}

type analyzeData struct {
	SessionId string `json:"session_id"`
	Result    struct {
		TriageLevel     string  `json:"triage_level"`
		TriageReason    string  `json:"triage_reason"`
		ConfidenceScore float64 `json:"confidence_score"`
		Source          string  `json:"analysis_source"`
		Recommendations struct {
			Medicines []struct {
				Name string `json:"name"`
				Dose string `json:"dose"`
			} `json:"medicines"`
			WhatToDo    []string `json:"what_to_do"`
			WhatNotToDo []string `json:"what_not_to_do"`
			Contacts    []struct {
				Name   string `json:"name"`
				Number string `json:"number"`
			} `json:"indian_emergency_contacts"`
		} `json:"recommendations"`
		Disclaimer string `json:"disclaimer"`
	} `json:"result"`
}

func main() {
	_ = godotenv.Load()

	baseURL := flag.String("url", "http://localhost:3000/api", "API base URL")
	symptoms := flag.String("symptoms", "Fever and sore throat since yesterday with a mild cough", "symptom description")
	severity := flag.String("severity", "moderate", "mild | moderate | significant | severe | emergency-level")
	age := flag.Int("age", 30, "patient age")
	pregnant := flag.Bool("pregnant", false, "patient is pregnant")
	conditions := flag.String("conditions", "", "existing conditions")
	allergies := flag.String("allergies", "", "allergies")
	pollTimeout := flag.Duration("poll", 30*time.Second, "how long to poll the status endpoint")
	flag.Parse()

	token, err := devToken(os.Getenv("JWT_SECRET"))
	if err != nil {
		color.Red("Failed to sign token: %v", err)
		os.Exit(1)
	}

	client := resty.New().
		SetBaseURL(*baseURL).
		SetTimeout(90*time.Second).
		SetAuthToken(token).
		SetHeader("Content-Type", "application/json")

	color.Cyan("Triage smoke test against %s\n", *baseURL)

	color.Yellow("\n1. Record consent")
	must(call(client, "POST", "/consent/v1", map[string]any{
		"consent_given": true,
		"consent_text":  "I understand this tool is educational and not medical advice.",
	}, nil))

	color.Yellow("\n2. Create session")
	var created struct {
		Id string `json:"id"`
	}
	must(call(client, "POST", "/session/v1", map[string]any{
		"symptoms_text":       *symptoms,
		"severity":            *severity,
		"age":                 *age,
		"is_pregnant":         *pregnant,
		"existing_conditions": *conditions,
		"allergies":           *allergies,
	}, &created))
	color.Green("Session %s", created.Id)

	color.Yellow("\n3. Analyze")
	var analyzed analyzeData
	must(call(client, "POST", "/session/v1/"+created.Id+"/analyze", nil, &analyzed))

	color.Yellow("\n4. Poll status")
	deadline := time.Now().Add(*pollTimeout)
	for {
		var st struct {
			Status      string  `json:"status"`
			TriageLevel *string `json:"triage_level"`
		}
		must(call(client, "GET", "/session/v1/"+created.Id+"/status", nil, &st))
		if st.Status == "completed" {
			color.Green("Status: completed")
			break
		}
		if time.Now().After(deadline) {
			color.Red("Session still pending after %s", *pollTimeout)
			os.Exit(1)
		}
		time.Sleep(time.Second)
	}

	printResult(analyzed)
}

// devToken signs a short-lived HS256 token for a throwaway user.
func devToken(secret string) (string, error) {
	if secret == "" {
		return "", fmt.Errorf("JWT_SECRET is not set")
	}
	return jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"sub": uuid.NewString(),
		"exp": time.Now().Add(15 * time.Minute).Unix(),
	}).SignedString([]byte(secret))
}

func call(client *resty.Client, method, path string, body any, out any) error {
	req := client.R()
	if body != nil {
		req.SetBody(body)
	}
	resp, err := req.Execute(method, path)
	if err != nil {
		return err
	}

	var env envelope
	if err := json.Unmarshal(resp.Body(), &env); err != nil {
		return fmt.Errorf("%s %s: %s: %s", method, path, resp.Status(), resp.String())
	}
	if !env.Success {
		return fmt.Errorf("%s %s: %s: %s", method, path, resp.Status(), env.Message)
	}
	color.Green("Status: %s", resp.Status())
	if out != nil && len(env.Data) > 0 {
		return json.Unmarshal(env.Data, out)
	}
	return nil
}

func must(err error) {
	if err != nil {
		color.Red("Failed: %v", err)
		os.Exit(1)
	}
}

func printResult(a analyzeData) {
	r := a.Result
	levelColor := map[string]*color.Color{
		"self-care":    color.New(color.FgGreen, color.Bold),
		"see-doctor":   color.New(color.FgYellow, color.Bold),
		"urgent-visit": color.New(color.FgHiRed, color.Bold),
		"emergency":    color.New(color.FgWhite, color.BgRed, color.Bold),
	}[r.TriageLevel]
	if levelColor == nil {
		levelColor = color.New(color.Bold)
	}

	fmt.Println()
	levelColor.Printf(" %s ", r.TriageLevel)
	fmt.Printf("  confidence %.2f  via %s\n", r.ConfidenceScore, r.Source)
	fmt.Println(r.TriageReason)

	if len(r.Recommendations.Contacts) > 0 {
		color.Red("\nEmergency contacts:")
		for _, c := range r.Recommendations.Contacts {
			color.Red("  %s: %s", c.Name, c.Number)
		}
	}
	if len(r.Recommendations.Medicines) > 0 {
		color.Cyan("\nMedicines:")
		for _, m := range r.Recommendations.Medicines {
			fmt.Printf("  %s (%s)\n", m.Name, m.Dose)
		}
	}
	if len(r.Recommendations.WhatToDo) > 0 {
		color.Cyan("\nWhat to do:")
		for _, s := range r.Recommendations.WhatToDo {
			fmt.Println("  + " + s)
		}
	}
	if len(r.Recommendations.WhatNotToDo) > 0 {
		color.Cyan("\nWhat not to do:")
		for _, s := range r.Recommendations.WhatNotToDo {
			fmt.Println("  - " + s)
		}
	}
	color.HiBlack("\n%s", r.Disclaimer)
}
