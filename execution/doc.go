/*
Package execution shapes query results into what a caller asked for.

An Execution is one of five strategies, chosen by its constructor:

	execution.Stream(gw, convert)        // lazy sequence, one consumer
	execution.Collection(gw)             // every row, eagerly
	execution.SingleEntity(gw)           // one row or nil, ambiguous when more
	execution.RawResult(gw)              // the store's unmapped result
	execution.Paginated(gw, continuation) // one keyset page

Keyset pagination:

Pages are requested with a Continuation holding the page size and, after the first
page, the identifier of the last row delivered. The statement sent to the store
resumes strictly after that identifier's ordering token and asks for one row more
than the page size; the surplus row is trimmed from the tail and only sets HasMore.

	c := execution.FirstPage(50)
	for {
	    page, err := execution.ExecutePaginated(ctx, gw, stmt, c)
	    if err != nil {
	        return err
	    }
	    consume(page.Rows)
	    next, ok := page.NextPage()
	    if !ok {
	        break
	    }
	    c = next
	}

On the last page Next is the continuation the page was requested with.

Result processing:

WithResultProcessing decorates any Executor with a Converter. ProcessingConverter
builds one from a ResultProcessor, passing scalar-like declared types through
untouched. Projector is a mapstructure-based ResultProcessor.
*/
package execution
