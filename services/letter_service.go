package services

import (
	"bytes"
	"context"
	"fmt"
	"html/template"
	"time"

	"github.com/chromedp/cdproto/page"
	"github.com/chromedp/chromedp"
	"github.com/cloudinary/cloudinary-go/v2"
	"github.com/cloudinary/cloudinary-go/v2/api/uploader"
	"github.com/google/uuid"
	config "github.com/mindmesh/internship_enrollment/configs"
	"github.com/mindmesh/internship_enrollment/models"
)

// GenerateConfirmationLetter renders the enrollment confirmation letter for an
// admin, prints it to PDF and uploads it. The record itself is not touched;
// the letter is regenerated on demand and only its URL is returned.
func GenerateConfirmationLetter(e *models.Enrollment) (string, error) {
	htmlContent, err := renderLetterHTML(e)
	if err != nil {
		return "", fmt.Errorf("failed to render letter HTML: %v", err)
	}

	pdfBytes, err := generatePDFFromHTML(htmlContent)
	if err != nil {
		return "", fmt.Errorf("failed to generate letter PDF: %v", err)
	}

	url, err := uploadLetterToCloudinary(pdfBytes, e.EnrollmentID)
	if err != nil {
		return "", fmt.Errorf("failed to upload letter: %v", err)
	}

	return url, nil
}

func renderLetterHTML(e *models.Enrollment) (string, error) {
	tmpl, err := template.ParseFiles("templates/letter.html")
	if err != nil {
		return "", err
	}

	data := struct {
		Name         string
		EnrollmentID string
		Domain       string
		Amount       int
		Role         string
		IssuedOn     string
	}{
		Name:         e.Name,
		EnrollmentID: e.EnrollmentID,
		Domain:       e.Domain,
		Amount:       e.Amount,
		Role:         e.Role,
		IssuedOn:     time.Now().Format("January 2, 2006"),
	}

	var rendered bytes.Buffer
	if err := tmpl.Execute(&rendered, data); err != nil {
		return "", err
	}
	return rendered.String(), nil
}

func generatePDFFromHTML(htmlContent string) ([]byte, error) {
	ctx, cancel := chromedp.NewContext(context.Background())
	defer cancel()

	var pdfBuffer []byte
	err := chromedp.Run(ctx,
		chromedp.Navigate("about:blank"),
		chromedp.ActionFunc(func(ctx context.Context) error {
			frameTree, err := page.GetFrameTree().Do(ctx)
			if err != nil {
				return err
			}
			return page.SetDocumentContent(frameTree.Frame.ID, htmlContent).Do(ctx)
		}),
		chromedp.ActionFunc(func(ctx context.Context) error {
			pdf, _, err := page.PrintToPDF().WithPrintBackground(true).Do(ctx)
			if err != nil {
				return err
			}
			pdfBuffer = pdf
			return nil
		}),
	)
	if err != nil {
		return nil, err
	}
	return pdfBuffer, nil
}

func uploadLetterToCloudinary(fileBytes []byte, enrollmentID string) (string, error) {
	cld, err := cloudinary.NewFromURL(config.Config("CLOUDINARY_URL"))
	if err != nil {
		return "", err
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	result, err := cld.Upload.Upload(ctx, bytes.NewReader(fileBytes), uploader.UploadParams{
		PublicID:     fmt.Sprintf("letters/%s_%s", enrollmentID, uuid.New().String()),
		ResourceType: "raw",
	})
	if err != nil {
		return "", err
	}

	return result.SecureURL, nil
}
