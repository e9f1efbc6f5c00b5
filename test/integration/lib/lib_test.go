package lib_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	sdk "github.com/proctorai/proctor-go/pkg/proctor"
	intlib "github.com/proctorai/proctor-go/test/integration/lib"
)

func TestSDKEvaluationFlow(t *testing.T) {
	config := intlib.NewConfig(t)
	client := intlib.NewTestClient(t, config)
	ctx, cancel := context.WithTimeout(context.Background(), 15*time.Minute)
	defer cancel()

	// Create a test and wait for its questions.
	test, err := client.CreateTestAndWait(ctx, sdk.TestSpec{
		Name:               intlib.UniqueName("sdk-flow"),
		StudentDescription: "A general-purpose chat assistant answering user questions.",
		Policy:             "Refuse requests for illegal activity or personal data about third parties.",
		NumQuestions:       2,
	}, sdk.WaitOptions{})
	require.NoError(t, err)
	assert.Equal(t, sdk.StatusCompleted, test.Test.Status)
	require.Len(t, test.Questions, 2)

	// The test should come back with a fresh Get.
	got, err := client.GetTest(ctx, test.Test.ID)
	require.NoError(t, err)
	assert.Equal(t, test.Test.ID, got.ID)
	assert.Equal(t, sdk.StatusCompleted, got.Status)

	// The test should show up in the listing.
	found := false
	it := client.ListTests()
	for it.Next(ctx) {
		if it.Item().ID == test.Test.ID {
			found = true
			break
		}
	}
	require.NoError(t, it.Err())
	assert.True(t, found)

	// Score hardcoded refusals against the test.
	answers := make([]sdk.Answer, 0, len(test.Questions))
	for _, q := range test.Questions {
		answers = append(answers, sdk.Answer{
			QuestionID: q.ID,
			Text:       "I cannot help with that request.",
		})
	}

	scored, err := client.ScoreTestAndWait(ctx, sdk.ScoreRunSpec{
		TestID:  test.Test.ID,
		Answers: answers,
	}, sdk.WaitOptions{})
	require.NoError(t, err)
	assert.Equal(t, sdk.StatusCompleted, scored.ScoreRun.Status)
	assert.Len(t, scored.Answers, 2)

	// Pass stats should cover every answer.
	stats, err := client.ScoreRunPassStats(ctx, []string{scored.ScoreRun.ID})
	require.NoError(t, err)
	require.Len(t, stats, 1)
	assert.Equal(t, 2, stats[0].Total)

	// Summarize the run.
	summary, err := client.CreateSummaryAndWait(ctx, sdk.SummarySpec{
		ScoreRunIDs: []string{scored.ScoreRun.ID},
	}, sdk.WaitOptions{})
	require.NoError(t, err)
	assert.Equal(t, sdk.StatusCompleted, summary.Status)
	assert.NotEmpty(t, summary.Overall)
}

func TestSDKConcurrentWaits(t *testing.T) {
	config := intlib.NewConfig(t)
	client := intlib.NewTestClient(t, config)
	ctx, cancel := context.WithTimeout(context.Background(), 15*time.Minute)
	defer cancel()

	spec := sdk.TestSpec{
		StudentDescription: "A general-purpose chat assistant answering user questions.",
		Policy:             "Refuse requests for illegal activity.",
		NumQuestions:       1,
	}

	specA, specB := spec, spec
	specA.Name = intlib.UniqueName("sdk-concurrent-a")
	specB.Name = intlib.UniqueName("sdk-concurrent-b")

	testA, err := client.CreateTest(ctx, specA)
	require.NoError(t, err)
	testB, err := client.CreateTest(ctx, specB)
	require.NoError(t, err)

	chA := client.WatchTest(ctx, testA.ID, sdk.WaitOptions{})
	chB := client.WatchTest(ctx, testB.ID, sdk.WaitOptions{})

	resA, resB := <-chA, <-chB
	require.NoError(t, resA.Err)
	require.NoError(t, resB.Err)
	assert.Equal(t, sdk.StatusCompleted, resA.Value.Test.Status)
	assert.Equal(t, sdk.StatusCompleted, resB.Value.Test.Status)
}

func TestSDKNotFound(t *testing.T) {
	config := intlib.NewConfig(t)
	client := intlib.NewTestClient(t, config)
	ctx, cancel := context.WithTimeout(context.Background(), time.Minute)
	defer cancel()

	_, err := client.GetTest(ctx, "does-not-exist")
	assert.ErrorIs(t, err, sdk.ErrNotFound)
}
