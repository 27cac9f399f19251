/*
Package ddb provides a DynamoDB implementation of the receipt ledger.

Receipts are stored in a single table with macro-expanded keys:

	indexMap := map[string]string{
	    "PK": "RUN#{RunID}",                               // Becomes "RUN#6f1c..."
	    "SK": "STREAM#{StreamName}#SEQ#{SequenceNumber}", // One item per record
	}

List queries the run partition and pages through LastEvaluatedKey.
*/
package ddb
