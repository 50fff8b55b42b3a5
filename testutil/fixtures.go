package testutil

// PipeLog is `git log --pretty=format:%H|%h|%s|%an|%ae|%ai` output
const PipeLog = `8f3e2a1b4c5d6e7f8091a2b3c4d5e6f708192a3b|8f3e2a1|Add weekly report export|Ann Lee|ann@example.com|2024-01-10 09:15:00 +0800
1a2b3c4d5e6f708192a3b4c5d6e7f8091a2b3c4d|1a2b3c4|Fix date range on Sundays|Bo Chen|bo@example.com|2024-01-09 18:02:11 +0800
`

// OnelineLog is `git log --oneline` output
const OnelineLog = `8f3e2a1 Add weekly report export
1a2b3c4 Fix date range on Sundays
`

// VerboseLog is default `git log` output
const VerboseLog = `commit 8f3e2a1b4c5d6e7f8091a2b3c4d5e6f708192a3b
Author: Ann Lee <ann@example.com>
Date:   Wed Jan 10 09:15:00 2024 +0800

    Add weekly report export

commit 1a2b3c4d5e6f708192a3b4c5d6e7f8091a2b3c4d
Author: Bo Chen <bo@example.com>
Date:   Tue Jan 9 18:02:11 2024 +0800

    Fix date range on Sundays
`

// SSEStream is a chat-completions event stream yielding "Hello world"
const SSEStream = "data: {\"choices\":[{\"delta\":{\"content\":\"Hello\"}}]}\n\n" +
	": keep-alive\n\n" +
	"data: not-json\n\n" +
	"data: {\"choices\":[{\"delta\":{\"content\":\" world\"}}]}\n\n" +
	"data: [DONE]\n\n"
