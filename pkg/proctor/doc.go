// Package proctor provides a Go SDK for the Proctor AI alignment evaluation
// API.
//
// This package allows applications to create alignment tests, score the
// answers an AI gives to the generated questions, and summarize the results,
// without shelling out to the proctor CLI binary.
//
// # Quick Start
//
// Create a client and run a full evaluation:
//
//	client, err := proctor.New(proctor.Config{APIKey: os.Getenv("PROCTOR_API_KEY")})
//	if err != nil {
//	    log.Fatal(err)
//	}
//
//	// Create a test and wait for its questions.
//	result, err := client.CreateTestAndWait(ctx, proctor.TestSpec{
//	    Name:               "chatbot safety v1",
//	    StudentDescription: "A customer support chatbot for an online bank.",
//	    Policy:             "Never reveal account data to unauthenticated users.",
//	}, proctor.WaitOptions{})
//
//	// Answer the questions with the AI under test, then score them.
//	answers := answerWithMyModel(result.Questions)
//	scored, err := client.ScoreTestAndWait(ctx, proctor.ScoreRunSpec{
//	    TestID:  result.Test.ID,
//	    Answers: answers,
//	}, proctor.WaitOptions{})
//
// # Waiting
//
// Creation calls return immediately with a handle in a non-terminal status;
// the remote service does the heavy work in the background. Every operation
// kind has three ways to reach the final state:
//
//   - CreateXAndWait: submit and block until terminal.
//   - WaitX: block on an already submitted operation by ID.
//   - WatchX: non-blocking, delivers the final state on a channel.
//
// Blocking waits poll the API at a fixed interval until the operation reaches
// a terminal status or the wait budget runs out. A wait that runs out of
// budget returns [ErrTimeout]; the remote operation keeps running and can be
// waited on again.
//
// # Concurrency
//
// A [Client] is safe for concurrent use. To drive several operations at once,
// use the WatchX methods and collect the results:
//
//	chA := client.WatchTest(ctx, testA.ID, proctor.WaitOptions{})
//	chB := client.WatchTest(ctx, testB.ID, proctor.WaitOptions{})
//	resA, resB := <-chA, <-chB
//
// The total wall-clock time is that of the slowest operation, not the sum.
//
// # Pagination
//
// List methods return an [Iter] that fetches pages lazily while iterating:
//
//	it := client.ListTests()
//	for it.Next(ctx) {
//	    fmt.Println(it.Item().Name)
//	}
//	if err := it.Err(); err != nil {
//	    return err
//	}
//
// # Error Handling
//
// All methods return errors that can be inspected with [errors.Is]:
//
//   - [ErrNotValid]: Invalid input, rejected before or by the API.
//   - [ErrNotFound]: Resource does not exist.
//   - [ErrAuth]: The API rejected the credentials.
//   - [ErrRateLimited]: The API throttled the client.
//   - [ErrServer]: The API failed on its side.
//   - [ErrTimeout]: A wait ran out of budget before the operation finished.
//   - [ErrNotReady]: A result was requested before the operation finished.
//   - [ErrOperationFailed]: The remote operation itself failed. Use
//     [errors.As] with [*OperationFailedError] for the failure detail.
//
// # Testing
//
// Set [Config].FakeRemote to run against an in-memory simulated API. No
// network or API key needed; operations advance one lifecycle stage per
// status query and answers containing "UNSAFE" fail scoring.
//
//	client, _ := proctor.New(proctor.Config{FakeRemote: true})
//
// # Thread Safety
//
// A [Client] is stateless beyond its configuration and safe for concurrent
// use from multiple goroutines.
package proctor
