package bilibili

import "errors"

// Failure taxonomy for the dynamic APIs. Errors are wrapped with
// fmt.Errorf("%w: ...") so callers can classify with errors.Is while
// the message keeps the tag name in front of the cause.
var (
	// ErrFetchFailed: transport failed or timed out on every attempt.
	ErrFetchFailed = errors.New("FetchFailed")

	// ErrUpstreamRejected: the request went through but the response
	// carried no usable data, only an upstream message.
	ErrUpstreamRejected = errors.New("UpstreamRejected")

	// ErrOriginNotFound: a repost's origin dynamic could not be
	// resolved. Always accompanied by a degraded placeholder item.
	ErrOriginNotFound = errors.New("OriginNotFound")

	// ErrMalformedCard: a card's payload didn't match its declared
	// type. Recovered inside the normalizer by degrading that one
	// item; it never reaches callers of NormalizeCard.
	ErrMalformedCard = errors.New("MalformedCard")
)
