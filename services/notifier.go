package services

import (
	"github.com/mindmesh/internship_enrollment/notifications"
)

// FunnelNotifier delivers the enrollment confirmation over SMS and, when the
// student left an email address, over email as well. The SMS outcome is
// reported to the caller (who logs and swallows it); email is fire-and-forget
// in its own goroutine.
type FunnelNotifier struct{}

func NewFunnelNotifier() *FunnelNotifier {
	return &FunnelNotifier{}
}

func (n *FunnelNotifier) SendEnrollmentConfirmation(name, phone, email string) error {
	meeting := notifications.MeetingFromConfig()

	if email != "" {
		go notifications.SendEmail(
			name,
			email,
			"Your Internship Enrollment is Confirmed!",
			"<h1>Congratulations "+name+"!</h1><p>Your internship enrollment is confirmed.</p><p><b>Date:</b> "+meeting.Date+"<br><b>Time:</b> "+meeting.Time+"<br><b>Link:</b> <a href='"+meeting.Link+"'>Join Meeting</a></p>",
		)
	}

	return notifications.SendEnrollmentSMS(phone, name, meeting)
}
