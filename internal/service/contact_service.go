package service

import (
	"context"
	"fmt"
	"net/mail"
	"strings"

	"github.com/xxxsen/common/logutil"
	"go.uber.org/zap"

	appErr "github.com/xxxsen/bizdir/internal/pkg/errors"
)

const maxContactMessage = 5000

type ContactInput struct {
	Name      string `json:"name"`
	Email     string `json:"email"`
	Phone     string `json:"phone"`
	Company   string `json:"company"`
	Message   string `json:"message"`
	CompanyID string `json:"company_id"`
}

type ContactService struct {
	sender    EmailSender
	inbox     string
	companies CompanyGetter
}

func NewContactService(sender EmailSender, inbox string, companies CompanyGetter) *ContactService {
	return &ContactService{sender: sender, inbox: strings.TrimSpace(inbox), companies: companies}
}

// Submit mails the form to the site inbox, copying the company when the form
// was sent from a company profile that lists an email address.
func (s *ContactService) Submit(ctx context.Context, input ContactInput) error {
	input = normalizeContactInput(input)
	if err := validateContactInput(input); err != nil {
		return err
	}
	if s.inbox == "" {
		return appErr.ErrMailDisabled
	}
	recipients := []string{s.inbox}
	companyName := "the directory"
	if input.CompanyID != "" && s.companies != nil {
		company, err := s.companies.Get(ctx, input.CompanyID)
		if err != nil {
			return err
		}
		companyName = company.DisplayName()
		if company.Email != "" && !strings.EqualFold(company.Email, s.inbox) {
			recipients = append(recipients, company.Email)
		}
	}
	subject := fmt.Sprintf("New contact request from %s - %s", input.Name, companyName)
	if err := s.sender.Send(ctx, Mail{
		To:      recipients,
		ReplyTo: input.Email,
		Subject: subject,
		Body:    contactBody(input, companyName),
	}); err != nil {
		logutil.GetLogger(ctx).Error("send contact mail failed", zap.String("email", input.Email), zap.Error(err))
		return err
	}
	return nil
}

func normalizeContactInput(input ContactInput) ContactInput {
	input.Name = strings.TrimSpace(input.Name)
	input.Email = strings.TrimSpace(input.Email)
	input.Phone = strings.TrimSpace(input.Phone)
	input.Company = strings.TrimSpace(input.Company)
	input.Message = strings.TrimSpace(input.Message)
	input.CompanyID = strings.TrimSpace(input.CompanyID)
	return input
}

func validateContactInput(input ContactInput) error {
	if input.Name == "" || input.Message == "" || len(input.Message) > maxContactMessage {
		return appErr.ErrInvalid
	}
	addr, err := mail.ParseAddress(input.Email)
	if err != nil || addr.Address != input.Email {
		return appErr.ErrInvalid
	}
	return nil
}

func contactBody(input ContactInput, companyName string) string {
	orDefault := func(v string) string {
		if v == "" {
			return "Not provided"
		}
		return v
	}
	var sb strings.Builder
	sb.WriteString("New contact request\n\n")
	sb.WriteString("From: " + input.Name + "\n")
	sb.WriteString("Email: " + input.Email + "\n")
	sb.WriteString("Phone: " + orDefault(input.Phone) + "\n")
	sb.WriteString("Company: " + orDefault(input.Company) + "\n\n")
	sb.WriteString("Message:\n" + input.Message + "\n\n")
	sb.WriteString("Sent via the profile page of " + companyName + ".\n")
	return sb.String()
}
