/*
Package operation implements the commands of drivername on top of the record
engine.

	+-------------+      +-------------+      +-------------+
	|   sii       | ---> |   text /    | ---> |   status    |
	| (Decode,    |      |   analyze   |      | (WriteFile) |
	|  Extract)   |      |             |      |   report    |
	+-------------+      +-------------+      +-------------+

🎯 Operations:
- TagOperation: rewrites one document, or every target under a directory
  with a bounded number of documents in flight
- CheckOperation: prints index statistics, ErrNoRecords when empty
- FindOperation: lists target documents under a directory
- DiagnoseOperation: validates a packaged mod, ErrDiagnosisFailed on problems

🔄 Flow of a tag:
1. Read the source through status.FileManager
2. Decode (UTF-8 as is, UTF-16 by byte order mark)
3. Rewrite every record value with the configured template
4. Encode back and hand the bytes to status.FileManager

Reading and writing go through the status package so that tests can swap
the file system for a mock. Cancellation is observed between documents.

🔍 Example:

	op, err := operation.NewTagOperation(operation.Options{Config: cfg}, operation.TagOptions{
		Input:  "driver_names.sii",
		Output: "dist/universal/locale/en_us/driver_names.sii",
	})
	if err != nil {
		return err
	}
	err = operation.NewRunner(zerolog.Ctx(ctx), false).Run(ctx, op)
*/
package operation
