package mongo

import "go.mongodb.org/mongo-driver/v2/bson"

func ownedBy(id bson.ObjectID, ownerID string) bson.M {
	return bson.M{"_id": id, "owner_id": ownerID}
}

func inFolder(id, folderID bson.ObjectID) bson.M {
	return bson.M{"_id": id, "folder_id": folderID}
}

// sortAsc and sortDesc order by key with _id as tiebreak.
func sortAsc(key string) bson.D {
	return bson.D{{Key: key, Value: 1}, {Key: "_id", Value: 1}}
}

func sortDesc(key string) bson.D {
	return bson.D{{Key: key, Value: -1}, {Key: "_id", Value: -1}}
}
