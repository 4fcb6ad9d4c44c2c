package utils

import (
	"fmt"
	"log"

	"edumart/config"

	"github.com/sendgrid/sendgrid-go"
	"github.com/sendgrid/sendgrid-go/helpers/mail"
)

// SendEnrollmentEmail sends a confirmation email when a student enrolls
// in a course.
func SendEnrollmentEmail(email, userName, courseName, enrollmentNo string) error {
	if config.AppConfig.SendgridAPIKey == "" {
		log.Println("SENDGRID_API_KEY not set, skipping enrollment email")
		return nil
	}

	from := mail.NewEmail("Edumart", config.AppConfig.EmailSender)
	to := mail.NewEmail(userName, email)
	subject := "Course Enrollment Confirmation"

	plainText := fmt.Sprintf(
		"Dear %s,\n\nYou have successfully enrolled in %s.\nYour enrollment number is %s.\n\nHappy Learning!\nEdumart Team",
		userName, courseName, enrollmentNo,
	)

	htmlBody := fmt.Sprintf(`
		<html>
			<body style="font-family: Arial, sans-serif; background-color: #f4f4f4; padding: 20px;">
				<div style="max-width: 600px; margin: auto; background-color: #ffffff; border-radius: 8px; padding: 30px;">
					<h2 style="color: #333333; text-align: center;">Enrollment Successful!</h2>
					<p style="font-size: 16px; color: #555555;">Dear %s,</p>
					<p style="font-size: 16px; color: #555555;">You have successfully enrolled in:</p>
					<h3 style="text-align: center; color: #4CAF50; margin: 20px 0;">%s</h3>
					<div style="background-color: #f8f9fa; border-radius: 8px; padding: 20px; margin: 20px 0; text-align: center;">
						<p style="font-size: 14px; color: #666666; margin-bottom: 10px;">Your Enrollment Number:</p>
						<h2 style="color: #2196F3; margin: 0;">%s</h2>
					</div>
					<p style="font-size: 14px; color: #999999; text-align: center; margin-top: 30px;">Happy Learning!</p>
					<p style="text-align: center; font-size: 12px; color: #bbbbbb; margin-top: 20px;">Edumart Team</p>
				</div>
			</body>
		</html>
	`, userName, courseName, enrollmentNo)

	message := mail.NewSingleEmail(from, subject, to, plainText, htmlBody)
	client := sendgrid.NewSendClient(config.AppConfig.SendgridAPIKey)

	response, err := client.Send(message)
	if err != nil {
		log.Printf("Error sending enrollment email: %v", err)
		return err
	}
	if response.StatusCode >= 400 {
		log.Printf("Failed to send enrollment email, response code: %d", response.StatusCode)
		return fmt.Errorf("failed to send enrollment email, code: %d", response.StatusCode)
	}

	log.Println("Enrollment email sent successfully to", email)
	return nil
}
