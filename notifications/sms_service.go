package notifications

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"time"

	config "github.com/mindmesh/internship_enrollment/configs"
)

const fast2smsURL = "https://www.fast2sms.com/dev/bulkV2"

// MeetingInfo is the onboarding meeting sent in the confirmation message.
type MeetingInfo struct {
	Date string `json:"date"`
	Time string `json:"time"`
	Link string `json:"link"`
}

func MeetingFromConfig() MeetingInfo {
	m := MeetingInfo{
		Date: config.Config("MEETING_DATE"),
		Time: config.Config("MEETING_TIME"),
		Link: config.Config("MEETING_LINK"),
	}
	if m.Date == "" {
		m.Date = "Coming Monday"
	}
	if m.Time == "" {
		m.Time = "10:00 AM (IST)"
	}
	return m
}

type fast2smsPayload struct {
	Route    string `json:"route"`
	Message  string `json:"message"`
	Language string `json:"language"`
	Flash    int    `json:"flash"`
	Numbers  string `json:"numbers"`
}

type fast2smsResponse struct {
	Return  bool     `json:"return"`
	Message []string `json:"message"`
}

// SendEnrollmentSMS sends the enrollment confirmation with the meeting details.
// The caller treats any error as advisory.
func SendEnrollmentSMS(phone, name string, meeting MeetingInfo) error {
	message := fmt.Sprintf(
		"CONGRATULATIONS %s! Your internship enrollment is CONFIRMED.\nDate: %s\nTime: %s\nLink: %s\n- MindMesh Internships",
		name, meeting.Date, meeting.Time, meeting.Link,
	)
	return sendSMS(phone, message)
}

// SendDecisionSMS informs a staff applicant of the admin's decision.
func SendDecisionSMS(phone, name, status string) error {
	var message string
	switch status {
	case "approved":
		message = fmt.Sprintf("Hi %s, your staff application has been APPROVED. We will reach out with next steps.\n- MindMesh Internships", name)
	case "rejected":
		message = fmt.Sprintf("Hi %s, after careful review your staff application was not approved at this time.\n- MindMesh Internships", name)
	default:
		return fmt.Errorf("no decision message for status %q", status)
	}
	return sendSMS(phone, message)
}

func sendSMS(phone, message string) error {
	apiKey := config.Config("FAST2SMS_API_KEY")
	if apiKey == "" {
		return errors.New("FAST2SMS_API_KEY is not set")
	}

	payload := fast2smsPayload{
		Route:    "q",
		Message:  message,
		Language: "english",
		Flash:    0,
		Numbers:  phone,
	}
	body, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("failed to marshal SMS payload: %v", err)
	}

	req, err := http.NewRequest("POST", fast2smsURL, bytes.NewBuffer(body))
	if err != nil {
		return fmt.Errorf("failed to create SMS request: %v", err)
	}
	req.Header.Set("authorization", apiKey)
	req.Header.Set("Content-Type", "application/json")

	client := &http.Client{Timeout: 10 * time.Second}
	resp, err := client.Do(req)
	if err != nil {
		return fmt.Errorf("failed to send SMS request: %v", err)
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("failed to read SMS response: %v", err)
	}

	var result fast2smsResponse
	if err := json.Unmarshal(respBody, &result); err != nil {
		return fmt.Errorf("failed to unmarshal SMS response: %v", err)
	}
	if !result.Return {
		return fmt.Errorf("fast2sms rejected the message: %s", string(respBody))
	}

	return nil
}
