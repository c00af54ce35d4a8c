package mempool_test

import (
	"sync"
	"testing"

	"github.com/ardanlabs/ledger/foundation/blockchain/database"
	"github.com/ardanlabs/ledger/foundation/blockchain/mempool"
)

// Success and failure markers.
const (
	success = "\u2713"
	failed  = "\u2717"
)

func TestCRUD(t *testing.T) {
	type table struct {
		name string
		txs  []database.Tx
	}

	tt := []table{
		{
			name: "basic",
			txs: []database.Tx{
				database.NewTx("A", "B", 10),
				database.NewTx("B", "C", 2.5),
				database.NewTx("A", "B", 10),
				database.NewRewardTx("miner"),
			},
		},
	}

	t.Log("Given the need to validate mempool api.")
	{
		for testID, tst := range tt {
			t.Logf("\tTest %d:\tWhen handling a set of transaction.", testID)
			{
				f := func(t *testing.T) {
					mp := mempool.New()

					for i, tx := range tst.txs {
						if n := mp.Append(tx); n != i+1 {
							t.Fatalf("\t%s\tTest %d:\tShould get back the pool size %d, got %d.", failed, testID, i+1, n)
						}
					}
					t.Logf("\t%s\tTest %d:\tShould be able to add new transactions, duplicates included.", success, testID)

					for i, tx := range mp.Copy() {
						if tx != tst.txs[i] {
							t.Logf("\t%s\tTest %d:\tgot: %s", failed, testID, tx)
							t.Logf("\t%s\tTest %d:\texp: %s", failed, testID, tst.txs[i])
							t.Fatalf("\t%s\tTest %d:\tShould get back transactions in submission order.", failed, testID)
						}
					}
					t.Logf("\t%s\tTest %d:\tShould get back transactions in submission order.", success, testID)

					trans := mp.Drain()
					if len(trans) != len(tst.txs) {
						t.Fatalf("\t%s\tTest %d:\tShould drain every transaction, got %d.", failed, testID, len(trans))
					}
					t.Logf("\t%s\tTest %d:\tShould drain every transaction.", success, testID)

					if mp.Count() != 0 {
						t.Fatalf("\t%s\tTest %d:\tShould have an empty pool after the drain.", failed, testID)
					}
					t.Logf("\t%s\tTest %d:\tShould have an empty pool after the drain.", success, testID)

					if empty := mp.Drain(); empty == nil || len(empty) != 0 {
						t.Fatalf("\t%s\tTest %d:\tShould drain an empty list from an empty pool.", failed, testID)
					}
					t.Logf("\t%s\tTest %d:\tShould drain an empty list from an empty pool.", success, testID)
				}

				t.Run(tst.name, f)
			}
		}
	}
}

func TestConcurrentAppend(t *testing.T) {
	const goroutines = 50

	t.Log("Given the need to accept transactions from many requests at once.")
	{
		mp := mempool.New()

		var wg sync.WaitGroup
		wg.Add(goroutines)
		for i := 0; i < goroutines; i++ {
			go func(i int) {
				defer wg.Done()
				mp.Append(database.NewTx("A", "B", float64(i)))
			}(i)
		}
		wg.Wait()

		if mp.Count() != goroutines {
			t.Fatalf("\t%s\tShould not lose any transaction, got %d.", failed, mp.Count())
		}
		t.Logf("\t%s\tShould not lose any transaction.", success)

		mp.Truncate()
		if mp.Count() != 0 {
			t.Fatalf("\t%s\tShould be empty after truncate.", failed)
		}
		t.Logf("\t%s\tShould be empty after truncate.", success)
	}
}
