package flakeaggregatorlib

import (
	"fmt"
	"unicode/utf8"

	"github.com/sirupsen/logrus"
	"github.com/slack-go/slack"
)

// maxSlackSectionLength is the longest text Slack accepts in a section block.
const maxSlackSectionLength = 3000

type SlackClient interface {
	PostMessage(channelID string, options ...slack.MsgOption) (string, string, error)
}

func slackSectionText(report checklister) string {
	text := report.Checklist()
	// leave room for the code fence
	if limit := maxSlackSectionLength - 8; len(text) > limit {
		cut := limit - 4
		for cut > 0 && !utf8.RuneStart(text[cut]) {
			cut--
		}
		text = text[:cut] + "...\n"
	}
	return "```\n" + text + "```"
}

func slackMessage(title string, report checklister) []slack.Block {
	return []slack.Block{
		&slack.HeaderBlock{
			Type: slack.MBTHeader,
			Text: &slack.TextBlockObject{
				Type: slack.PlainTextType,
				Text: title,
			},
		},
		&slack.SectionBlock{
			Type: slack.MBTSection,
			Text: &slack.TextBlockObject{
				Type: slack.MarkdownType,
				Text: slackSectionText(report),
			},
		},
	}
}

func postReport(logger logrus.FieldLogger, client SlackClient, channel, title string, report checklister) error {
	message := slackMessage(title, report)
	responseChannel, responseTimestamp, err := client.PostMessage(channel,
		slack.MsgOptionText(title, true),
		slack.MsgOptionBlocks(message...))
	if err != nil {
		logger.WithError(err).WithField("message", message).Debug("Failed to post report")
		return fmt.Errorf("failed to post report to channel %s: %w", channel, err)
	}
	logger.Infof("Posted report in channel: %s at: %s", responseChannel, responseTimestamp)
	return nil
}

// PostFailureReport posts report to a Slack channel as a checklist.
func PostFailureReport(logger logrus.FieldLogger, client SlackClient, channel string, report *FailureReport) error {
	title := fmt.Sprintf("Flaky tests: %d failing", report.Total)
	return postReport(logger, client, channel, title, report)
}

func PostBuildDiffReport(logger logrus.FieldLogger, client SlackClient, channel string, report *BuildDiffReport) error {
	title := fmt.Sprintf("%s #%d: %d new test failures", report.JobName, report.BuildNumber, len(report.New))
	return postReport(logger, client, channel, title, report)
}
