package services

import (
	"bytes"
	"crypto/tls"
	"fmt"
	"html/template"
	"net/smtp"

	"github.com/uniexpo/fair-system/config"
)

type EmailService struct {
	cfg *config.Config
}

func NewEmailService(cfg *config.Config) *EmailService {
	return &EmailService{cfg: cfg}
}

func (s *EmailService) SendEmail(to []string, subject string, body string) error {
	auth := smtp.PlainAuth("", s.cfg.SMTPUser, s.cfg.SMTPPass, s.cfg.SMTPHost)

	msg := []byte("To: " + to[0] + "\r\n" +
		"From: " + s.cfg.SMTPFrom + "\r\n" +
		"Subject: " + subject + "\r\n" +
		"MIME-version: 1.0;\nContent-Type: text/html; charset=\"UTF-8\";\r\n" +
		"\r\n" +
		body + "\r\n")

	addr := fmt.Sprintf("%s:%d", s.cfg.SMTPHost, s.cfg.SMTPPort)

	tlsconfig := &tls.Config{
		InsecureSkipVerify: true,
		ServerName:         s.cfg.SMTPHost,
	}

	var client *smtp.Client
	if s.cfg.SMTPPort == 465 {
		// Implicit TLS
		conn, err := tls.Dial("tcp", addr, tlsconfig)
		if err != nil {
			return fmt.Errorf("tls connection failed: %w", err)
		}
		defer conn.Close()
		client, err = smtp.NewClient(conn, s.cfg.SMTPHost)
		if err != nil {
			return fmt.Errorf("failed to create smtp client: %w", err)
		}
	} else {
		// STARTTLS, usually port 587
		c, err := smtp.Dial(addr)
		if err != nil {
			return fmt.Errorf("smtp connection failed: %w", err)
		}
		client = c
		if err = client.StartTLS(tlsconfig); err != nil {
			client.Close()
			return fmt.Errorf("starttls command failed: %w", err)
		}
	}
	defer client.Quit()

	if err := client.Auth(auth); err != nil {
		return fmt.Errorf("smtp authentication failed: %w", err)
	}

	if err := client.Mail(s.cfg.SMTPFrom); err != nil {
		return fmt.Errorf("mail from command failed: %w", err)
	}
	for _, addr := range to {
		if err := client.Rcpt(addr); err != nil {
			return fmt.Errorf("rcpt to command failed: %w", err)
		}
	}

	w, err := client.Data()
	if err != nil {
		return fmt.Errorf("data command failed: %w", err)
	}

	if _, err = w.Write(msg); err != nil {
		return fmt.Errorf("failed to write message body: %w", err)
	}

	if err = w.Close(); err != nil {
		return fmt.Errorf("failed to close data writer: %w", err)
	}

	return nil
}

func (s *EmailService) GenerateEmailBody(templatePath string, data interface{}) (string, error) {
	t, err := template.ParseFiles(templatePath)
	if err != nil {
		return "", fmt.Errorf("failed to parse template %s: %w", templatePath, err)
	}

	var body bytes.Buffer
	if err := t.Execute(&body, data); err != nil {
		return "", fmt.Errorf("failed to execute template %s: %w", templatePath, err)
	}

	return body.String(), nil
}

func (s *EmailService) SendWelcomeEmail(userEmail, userName string) error {
	subject := "Bem-vindo à Feira de Ciências!"
	data := struct {
		Name     string
		LoginURL string
	}{
		Name:     userName,
		LoginURL: fmt.Sprintf("%s/login", s.cfg.PublicURL),
	}

	htmlBody, err := s.GenerateEmailBody("templates/emails/welcome_email.html", data)
	if err != nil {
		return fmt.Errorf("failed to build welcome email body: %w", err)
	}
	return s.SendEmail([]string{userEmail}, subject, htmlBody)
}

func (s *EmailService) SendTemporaryPasswordEmail(userEmail, userName, tempPassword string) error {
	subject := "Sua senha temporária"
	data := struct {
		Name         string
		TempPassword string
		LoginURL     string
	}{
		Name:         userName,
		TempPassword: tempPassword,
		LoginURL:     fmt.Sprintf("%s/login", s.cfg.PublicURL),
	}

	htmlBody, err := s.GenerateEmailBody("templates/emails/temporary_password_email.html", data)
	if err != nil {
		return fmt.Errorf("failed to build temporary password email body: %w", err)
	}
	return s.SendEmail([]string{userEmail}, subject, htmlBody)
}

func (s *EmailService) SendProjectStatusEmail(userEmail, projectTitle, statusName string) error {
	subject := fmt.Sprintf("Projeto '%s': %s", projectTitle, statusName)
	data := struct {
		ProjectTitle string
		Status       string
		ProjectsURL  string
	}{
		ProjectTitle: projectTitle,
		Status:       statusName,
		ProjectsURL:  fmt.Sprintf("%s/projetos", s.cfg.PublicURL),
	}

	htmlBody, err := s.GenerateEmailBody("templates/emails/project_status_email.html", data)
	if err != nil {
		return fmt.Errorf("failed to build project status email body: %w", err)
	}
	return s.SendEmail([]string{userEmail}, subject, htmlBody)
}
