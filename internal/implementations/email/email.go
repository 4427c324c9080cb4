package email

import (
	"context"
	"encoding/json"
	"errors"

	"gatekeeper/internal/core/domain/user"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/ses"
	"github.com/aws/aws-sdk-go-v2/service/ses/types"
)

type EmailSender struct {
	ses *ses.Client
	// This address must be verified with Amazon SES.
	sender                  string
	passwordResetTemplate   string
	passwordChangedTemplate string
}

func NewEmailSender(
	awsConfig aws.Config,
	sender string,
	passwordResetTemplate string,
	passwordChangedTemplate string,
) *EmailSender {
	return &EmailSender{
		ses:                     ses.NewFromConfig(awsConfig),
		sender:                  sender,
		passwordResetTemplate:   passwordResetTemplate,
		passwordChangedTemplate: passwordChangedTemplate,
	}
}

func (s *EmailSender) SendResetLink(ctx context.Context, u user.User, link string) error {
	if u.Email == "" {
		return errors.New("user email is not defined")
	}

	templateParamsBytes, err := json.Marshal(
		passwordResetTemplateParams{
			Name:             u.Name,
			PasswordResetUrl: link,
		},
	)
	if err != nil {
		return err
	}
	templateParams := string(templateParamsBytes)

	email := string(u.Email)
	_, err = s.ses.SendTemplatedEmail(
		ctx,
		&ses.SendTemplatedEmailInput{
			Source: &s.sender,
			Destination: &types.Destination{
				CcAddresses: []string{},
				ToAddresses: []string{email},
			},
			Template:     &s.passwordResetTemplate,
			TemplateData: &templateParams,
		},
	)
	return err
}

func (s *EmailSender) SendPasswordChanged(ctx context.Context, u user.User) error {
	if u.Email == "" {
		return errors.New("user email is not defined")
	}

	templateParamsBytes, err := json.Marshal(passwordChangedTemplateParams{Name: u.Name})
	if err != nil {
		return err
	}
	templateParams := string(templateParamsBytes)

	email := string(u.Email)
	_, err = s.ses.SendTemplatedEmail(
		ctx,
		&ses.SendTemplatedEmailInput{
			Source: &s.sender,
			Destination: &types.Destination{
				CcAddresses: []string{},
				ToAddresses: []string{email},
			},
			Template:     &s.passwordChangedTemplate,
			TemplateData: &templateParams,
		},
	)
	return err
}

type passwordResetTemplateParams struct {
	Name             string `json:"name"`
	PasswordResetUrl string `json:"passwordResetUrl"`
}

type passwordChangedTemplateParams struct {
	Name string `json:"name"`
}
