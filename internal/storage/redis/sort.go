package redis

import (
	"sort"
	"strconv"

	"github.com/pkalnins/tycoon-go/internal/model"
)

func sortPlayersBySeat(players []*model.Player) {
	sort.Slice(players, func(i, j int) bool { return players[i].Seat < players[j].Seat })
}

func sortTilesByIndex(tiles []*model.Tile) {
	sort.Slice(tiles, func(i, j int) bool { return tiles[i].Index < tiles[j].Index })
}

func itoa(n int) string {
	return strconv.Itoa(n)
}
