package proctor_test

import (
	"context"
	"fmt"
	"time"

	"github.com/proctorai/proctor-go/pkg/proctor"
)

// This example shows how to create a client using the fake remote for
// testing. No network or API key needed.
func Example_testing() {
	ctx := context.Background()

	client, err := proctor.New(proctor.Config{
		FakeRemote:   true,
		PollInterval: 10 * time.Millisecond,
	})
	if err != nil {
		panic(err)
	}

	result, err := client.CreateTestAndWait(ctx, proctor.TestSpec{
		Name:               "chatbot safety",
		StudentDescription: "A customer support chatbot for an online bank.",
		Policy:             "Never reveal account data to unauthenticated users.",
		NumQuestions:       3,
	}, proctor.WaitOptions{})
	if err != nil {
		panic(err)
	}

	fmt.Printf("Test %q is %s with %d questions\n", result.Test.Name, result.Test.Status, len(result.Questions))

	// Output:
	// Test "chatbot safety" is completed with 3 questions
}

// This example shows the full evaluation flow: generate questions, answer
// them with the AI under test, score the answers and check the pass rate.
func Example_evaluation() {
	ctx := context.Background()

	client, err := proctor.New(proctor.Config{
		FakeRemote:   true,
		PollInterval: 10 * time.Millisecond,
	})
	if err != nil {
		panic(err)
	}

	test, err := client.CreateTestAndWait(ctx, proctor.TestSpec{
		Name:               "chatbot safety",
		StudentDescription: "A customer support chatbot for an online bank.",
		Policy:             "Never reveal account data to unauthenticated users.",
		NumQuestions:       2,
	}, proctor.WaitOptions{})
	if err != nil {
		panic(err)
	}

	// Answer every question with the AI under test. Here the answers are
	// hardcoded refusals.
	answers := make([]proctor.Answer, 0, len(test.Questions))
	for _, q := range test.Questions {
		answers = append(answers, proctor.Answer{
			QuestionID: q.ID,
			Text:       "I cannot help with that request.",
		})
	}

	scored, err := client.ScoreTestAndWait(ctx, proctor.ScoreRunSpec{
		TestID:  test.Test.ID,
		Answers: answers,
	}, proctor.WaitOptions{})
	if err != nil {
		panic(err)
	}

	stats, err := client.ScoreRunPassStats(ctx, []string{scored.ScoreRun.ID})
	if err != nil {
		panic(err)
	}

	fmt.Printf("Scored %d answers\n", len(scored.Answers))
	fmt.Printf("Pass rate: %.2f (%d/%d)\n", stats[0].PassRate, stats[0].PassTotal, stats[0].Total)

	// Output:
	// Scored 2 answers
	// Pass rate: 1.00 (2/2)
}

// This example shows how to drive several operations concurrently with the
// watch methods: the total wait is that of the slowest operation.
func Example_concurrent() {
	ctx := context.Background()

	client, err := proctor.New(proctor.Config{
		FakeRemote:   true,
		PollInterval: 10 * time.Millisecond,
	})
	if err != nil {
		panic(err)
	}

	spec := proctor.TestSpec{
		Name:               "chatbot safety",
		StudentDescription: "A customer support chatbot for an online bank.",
		Policy:             "Never reveal account data to unauthenticated users.",
		NumQuestions:       1,
	}

	testA, err := client.CreateTest(ctx, spec)
	if err != nil {
		panic(err)
	}
	testB, err := client.CreateTest(ctx, spec)
	if err != nil {
		panic(err)
	}

	chA := client.WatchTest(ctx, testA.ID, proctor.WaitOptions{})
	chB := client.WatchTest(ctx, testB.ID, proctor.WaitOptions{})

	resA, resB := <-chA, <-chB
	if resA.Err != nil || resB.Err != nil {
		panic("watch failed")
	}

	fmt.Printf("A: %s, B: %s\n", resA.Value.Test.Status, resB.Value.Test.Status)

	// Output:
	// A: completed, B: completed
}
